package entities

// Book is a single catalog record. Title is the removal key and is not unique.
// FileLink is an opaque path or URL; nothing in the catalog opens or validates it.
type Book struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string `gorm:"type:text" json:"title"`
	Author   string `gorm:"type:text" json:"author"`
	Genre    string `gorm:"type:text" json:"genre"`
	FileLink string `gorm:"type:text" json:"file_link"`
}

func (Book) TableName() string {
	return "books"
}
