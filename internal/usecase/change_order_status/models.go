package change_order_status

import "github.com/m04kA/SMC-DetailingService/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	OrderID  int64  // ID заказа
	Code     string // Код нового статуса
	MasterID *int64 // Мастер, выполняющий переход (опционально)

	// AssignedOnly разрешает переход, только если MasterID назначен на заказ
	AssignedOnly bool
}

// Response модель ответа
type Response struct {
	OrderID  int64
	Previous domain.OrderStatus
	Status   domain.OrderStatus
}
