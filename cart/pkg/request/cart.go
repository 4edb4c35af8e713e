package request

type AddCartItem struct {
	ProductId string `json:"productId" validate:"required"`
	Quantity  int32  `json:"quantity"`
}

type UpdateCartItemQuantity struct {
	Quantity int32 `json:"quantity"`
}
