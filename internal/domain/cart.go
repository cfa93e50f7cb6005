package domain

// CartLine — позиция корзины, присланная клиентом.
// Поле price из запроса сознательно не попадает в модель:
// цену всегда пересчитываем по каталогу на момент валидации.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
