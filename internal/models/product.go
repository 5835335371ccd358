package models

// Product is the value embedded in every stored record.
type Product struct {
	ProductID int64   `json:"productid" bson:"productid" gorm:"column:productid;not null"`
	Category  string  `json:"category" bson:"category" gorm:"size:100;not null"`
	Price     float64 `json:"price" bson:"price" gorm:"not null"`
	Name      string  `json:"name" bson:"name" gorm:"size:200;not null"`
	InStock   bool    `json:"instock" bson:"instock" gorm:"column:instock;not null"`
}

// ProductRecord is the persisted {id, product} document.
type ProductRecord struct {
	ID      int64   `json:"id" bson:"id" gorm:"primaryKey;autoIncrement:false"`
	Product Product `json:"product" bson:"product" gorm:"embedded;embeddedPrefix:product_"`
}

func (r *ProductRecord) TableName() string {
	return "products"
}
