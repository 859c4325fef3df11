package save_order

import (
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
)

// Request модель запроса на сохранение заказа
type Request struct {
	ID    int64           // 0 - новый заказ, иначе перезапись существующего
	Draft orderform.Draft // Данные формы
}

// Response модель ответа с сохраненным заказом
type Response struct {
	Order   *domain.Order
	Created bool
}
