package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// ShopSellRecord 个人商店出售记录
type ShopSellRecord struct {
	Id         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RecordId   string             `bson:"recordId" json:"recordId"`
	Serial     int64              `bson:"serial" json:"serial"`
	SellerUid  string             `bson:"sellerUid" json:"sellerUid"`
	BuyerUid   string             `bson:"buyerUid" json:"buyerUid"`
	BuyerName  string             `bson:"buyerName" json:"buyerName"`
	ItemId     int32              `bson:"itemId" json:"itemId"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Money      int64              `bson:"money" json:"money"`
	CreateTime int64              `bson:"createTime" json:"createTime"`
}

// GameRecord 小游戏对局记录
type GameRecord struct {
	Id         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RecordId   string             `bson:"recordId" json:"recordId"`
	Serial     int64              `bson:"serial" json:"serial"`
	Kind       int                `bson:"kind" json:"kind"`
	Uids       []string           `bson:"uids" json:"uids"`
	Winner     int                `bson:"winner" json:"winner"`
	Result     int                `bson:"result" json:"result"`
	CreateTime int64              `bson:"createTime" json:"createTime"`
}
