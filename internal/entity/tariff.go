package entity

// HTSCode 关税分类编码行
// GeneralRate 为原始文本（如 "4.4%"、"Free"），解析在 DAO 层完成
type HTSCode struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	HTSNumber   string `gorm:"column:hts_number;type:varchar(16);not null;uniqueIndex"`
	Description string `gorm:"column:description;type:varchar(512)"`
	GeneralRate string `gorm:"column:general_rate;type:varchar(64)"`
}

// TableName 指定表名
func (HTSCode) TableName() string {
	return "hts_codes"
}
