package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
)

// Шаги оформления заказа, переходы только между соседними
const (
	StepShipping     = "shipping"
	StepPayment      = "payment"
	StepReview       = "review"
	StepConfirmation = "confirmation"
)

var (
	// ErrCartEmpty — сигнал транспортному слою увести пользователя из
	// оформления: с пустой корзиной оформлять нечего.
	ErrCartEmpty   = errors.New("cart is empty")
	ErrInvalidStep = errors.New("operation is not allowed at the current step")
)

// ShippingForm — данные доставки, собираемые на первом шаге.
type ShippingForm struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	Zip       string `json:"zip" validate:"required"`
	Country   string `json:"country" validate:"required"`
}

// PaymentForm — данные оплаты. Для метода credit обязательны все пять полей
// карты, для paypal и bank дополнительных полей нет. Карта нигде не списывается,
// поля только сохраняются до подтверждения.
type PaymentForm struct {
	Method          string `json:"method" validate:"required,oneof=credit paypal bank"`
	CardNumber      string `json:"card_number" validate:"required_if=Method credit"`
	CardName        string `json:"card_name" validate:"required_if=Method credit"`
	CardExpiryMonth string `json:"card_expiry_month" validate:"required_if=Method credit"`
	CardExpiryYear  string `json:"card_expiry_year" validate:"required_if=Method credit"`
	CardCVV         string `json:"card_cvv" validate:"required_if=Method credit"`
}

// CheckoutTotals — суммы по корзине на момент расчёта.
type CheckoutTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// CheckoutState — текущее состояние оформления, отдаваемое наружу.
type CheckoutState struct {
	Step     string          `json:"step"`
	Shipping *ShippingForm   `json:"shipping,omitempty"`
	Payment  *PaymentForm    `json:"payment,omitempty"`
	Totals   *CheckoutTotals `json:"totals,omitempty"`
	Order    *models.Order   `json:"order,omitempty"` // заполняется на шаге confirmation
}

// checkoutSession — состояние оформления одного пользователя между запросами.
type checkoutSession struct {
	step     string
	shipping *ShippingForm
	payment  *PaymentForm
	totals   *CheckoutTotals
	order    *models.Order
}

// CheckoutService определяет интерфейс пошагового оформления заказа:
// shipping -> payment -> review -> confirmation, назад только явным Back.
type CheckoutService interface {
	// Current возвращает текущее состояние, создавая сессию на шаге shipping.
	Current(ctx context.Context, userID int64) (*CheckoutState, error)
	// SubmitShipping валидирует форму доставки и переводит на шаг payment.
	SubmitShipping(ctx context.Context, userID int64, form ShippingForm) (*CheckoutState, error)
	// SubmitPayment валидирует форму оплаты и переводит на шаг review.
	SubmitPayment(ctx context.Context, userID int64, form PaymentForm) (*CheckoutState, error)
	// Back возвращает на предыдущий шаг, введённые формы сохраняются.
	Back(ctx context.Context, userID int64) (*CheckoutState, error)
	// Confirm создаёт заказ по снимку корзины и очищает корзину.
	// При ошибке создания пользователь остаётся на шаге review.
	Confirm(ctx context.Context, userID int64) (*CheckoutState, error)
}

type checkoutService struct {
	log         *slog.Logger
	cartService CartService
	orderRepo   storage.OrderStorage
	shippingFee decimal.Decimal
	taxRate     decimal.Decimal

	mu       sync.Mutex
	sessions map[int64]*checkoutSession
	validate *validator.Validate
}

func NewCheckoutService(log *slog.Logger, cartService CartService, orderRepo storage.OrderStorage, shippingFee, taxRate decimal.Decimal) CheckoutService {
	return &checkoutService{
		log:         log,
		cartService: cartService,
		orderRepo:   orderRepo,
		shippingFee: shippingFee,
		taxRate:     taxRate,
		sessions:    make(map[int64]*checkoutSession),
		validate:    validator.New(),
	}
}

// calcTotals считает суммы по корзине: плоская стоимость доставки добавляется
// только при непустой промежуточной сумме, налог берётся с промежуточной суммы.
func (s *checkoutService) calcTotals(cart *CartResponse) *CheckoutTotals {
	subtotal := cart.Subtotal
	shipping := decimal.Zero
	if subtotal.GreaterThan(decimal.Zero) {
		shipping = s.shippingFee
	}
	tax := subtotal.Mul(s.taxRate)
	return &CheckoutTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

func (sess *checkoutSession) state() *CheckoutState {
	return &CheckoutState{
		Step:     sess.step,
		Shipping: sess.shipping,
		Payment:  sess.payment,
		Totals:   sess.totals,
		Order:    sess.order,
	}
}

// session возвращает сессию пользователя, при необходимости создавая новую на
// шаге shipping. Пустая корзина допустима только на шаге confirmation.
// Вызывается под s.mu.
func (s *checkoutService) session(ctx context.Context, userID int64) (*checkoutSession, *CartResponse, error) {
	sess, ok := s.sessions[userID]

	cart, err := s.cartService.GetCart(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if len(cart.Items) == 0 {
		if ok && sess.step == StepConfirmation {
			return sess, cart, nil
		}
		delete(s.sessions, userID)
		return nil, nil, ErrCartEmpty
	}

	// завершённое оформление не переиспользуется, новый заказ начинается с shipping
	if !ok || sess.step == StepConfirmation {
		sess = &checkoutSession{step: StepShipping}
		s.sessions[userID] = sess
	}
	sess.totals = s.calcTotals(cart)
	return sess, cart, nil
}

func (s *checkoutService) Current(ctx context.Context, userID int64) (*CheckoutState, error) {
	const op = "service.CheckoutService.Current"
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _, err := s.session(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sess.state(), nil
}

func (s *checkoutService) SubmitShipping(ctx context.Context, userID int64, form ShippingForm) (*CheckoutState, error) {
	const op = "service.CheckoutService.SubmitShipping"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _, err := s.session(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sess.step != StepShipping {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidStep)
	}

	if err := s.validate.Struct(form); err != nil {
		logger.Warn("shipping form validation failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sess.shipping = &form
	sess.step = StepPayment
	logger.Info("shipping step completed")
	return sess.state(), nil
}

func (s *checkoutService) SubmitPayment(ctx context.Context, userID int64, form PaymentForm) (*CheckoutState, error) {
	const op = "service.CheckoutService.SubmitPayment"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _, err := s.session(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sess.step != StepPayment {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidStep)
	}

	if err := s.validate.Struct(form); err != nil {
		logger.Warn("payment form validation failed", slog.String("method", form.Method), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sess.payment = &form
	sess.step = StepReview
	logger.Info("payment step completed", slog.String("method", form.Method))
	return sess.state(), nil
}

// Back разрешён без условий: payment -> shipping, review -> payment.
func (s *checkoutService) Back(ctx context.Context, userID int64) (*CheckoutState, error) {
	const op = "service.CheckoutService.Back"

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _, err := s.session(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch sess.step {
	case StepPayment:
		sess.step = StepShipping
	case StepReview:
		sess.step = StepPayment
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidStep)
	}
	return sess.state(), nil
}

func (s *checkoutService) Confirm(ctx context.Context, userID int64) (*CheckoutState, error) {
	const op = "service.CheckoutService.Confirm"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, cart, err := s.session(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sess.step != StepReview {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidStep)
	}

	// снимок корзины: цены фиксируются на момент подтверждения
	items := make([]storage.OrderItemInput, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, storage.OrderItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}
	totals := s.calcTotals(cart)

	order, err := s.orderRepo.CreateOrder(ctx, userID, totals.Total, items)
	if err != nil {
		// пользователь остаётся на review, повторная попытка за ним
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	if err := s.cartService.Clear(ctx, userID); err != nil {
		logger.Error("failed to clear cart after order", slog.Int64("orderID", order.ID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to clear cart: %w", op, err)
	}

	sess.step = StepConfirmation
	sess.order = order
	sess.totals = totals
	// данные карты после оформления не хранятся
	sess.payment = &PaymentForm{Method: sess.payment.Method}

	logger.Info("checkout confirmed", slog.Int64("orderID", order.ID), slog.String("total", totals.Total.String()))
	return sess.state(), nil
}
