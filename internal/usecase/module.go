package usecase

import "go.uber.org/fx"

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewAuthUseCase,
		NewProductUseCase,
		NewOrderUseCase,
		NewWishlistUseCase,
		NewNotificationUseCase,
		NewCommissionUseCase,
	),
	fx.Provide(func(c *CommissionUseCase) RateProvider { return c }),
)
