package models

type Paste struct {
	ID      string `bson:"id" json:"id"`
	Content string `bson:"content" json:"content"`
}
