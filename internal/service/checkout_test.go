package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/service"
	"github.com/linemk/storefront/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	store    *storage.Storage
	cartRepo storage.CartStorage
	cartSvc  service.CartService
	checkout service.CheckoutService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	store := storage.NewStorage()
	store.AddProduct(models.Product{Name: "Classic Cotton T-Shirt", Price: decimal.RequireFromString("19.99"), InStock: true})
	store.AddProduct(models.Product{Name: "Denim Jacket", Price: decimal.RequireFromString("69.99"), InStock: true})

	cartRepo := storage.NewCartRepository(store)
	cartSvc := service.NewCartService(testLogger(), cartRepo)
	checkout := service.NewCheckoutService(
		testLogger(), cartSvc, storage.NewOrderRepository(store),
		decimal.RequireFromString("9.99"), decimal.RequireFromString("0.08"),
	)
	return &checkoutFixture{store: store, cartRepo: cartRepo, cartSvc: cartSvc, checkout: checkout}
}

func validShipping() service.ShippingForm {
	return service.ShippingForm{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     "ivan@example.com",
		Address:   "Lenina 1",
		City:      "Moscow",
		Zip:       "101000",
		Country:   "RU",
	}
}

// оформление недостижимо с пустой корзиной
func TestCheckout_EmptyCartGuard(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.checkout.Current(ctx, 1)
	assert.ErrorIs(t, err, service.ErrCartEmpty)

	_, err = f.checkout.SubmitShipping(ctx, 1, validShipping())
	assert.ErrorIs(t, err, service.ErrCartEmpty)
}

func TestCheckout_StartsAtShipping(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)

	state, err := f.checkout.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.StepShipping, state.Step)
}

func TestCheckout_ShippingValidation(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)

	// невалидный email блокирует переход на payment
	form := validShipping()
	form.Email = "not-an-email"
	_, err = f.checkout.SubmitShipping(ctx, 1, form)
	require.Error(t, err)

	state, err := f.checkout.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.StepShipping, state.Step)

	// валидная форма пропускает
	state, err = f.checkout.SubmitShipping(ctx, 1, validShipping())
	require.NoError(t, err)
	assert.Equal(t, service.StepPayment, state.Step)
}

// метод credit без номера карты не пропускает на review
func TestCheckout_CreditRequiresCardFields(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)
	_, err = f.checkout.SubmitShipping(ctx, 1, validShipping())
	require.NoError(t, err)

	_, err = f.checkout.SubmitPayment(ctx, 1, service.PaymentForm{
		Method:   "credit",
		CardName: "IVAN PETROV", CardExpiryMonth: "12", CardExpiryYear: "2027", CardCVV: "123",
		// CardNumber пуст
	})
	require.Error(t, err)

	state, err := f.checkout.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.StepPayment, state.Step)
}

// для paypal дополнительные поля не требуются
func TestCheckout_PaypalNeedsNoCard(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)
	_, err = f.checkout.SubmitShipping(ctx, 1, validShipping())
	require.NoError(t, err)

	state, err := f.checkout.SubmitPayment(ctx, 1, service.PaymentForm{Method: "paypal"})
	require.NoError(t, err)
	assert.Equal(t, service.StepReview, state.Step)
}

func TestCheckout_UnknownMethodRejected(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)
	_, err = f.checkout.SubmitShipping(ctx, 1, validShipping())
	require.NoError(t, err)

	_, err = f.checkout.SubmitPayment(ctx, 1, service.PaymentForm{Method: "cash"})
	assert.Error(t, err)
}

// Back возвращает на предыдущий шаг, введённые данные сохраняются
func TestCheckout_BackPreservesForms(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)
	_, err = f.checkout.SubmitShipping(ctx, 1, validShipping())
	require.NoError(t, err)
	_, err = f.checkout.SubmitPayment(ctx, 1, service.PaymentForm{Method: "bank"})
	require.NoError(t, err)

	state, err := f.checkout.Back(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.StepPayment, state.Step)
	require.NotNil(t, state.Payment)
	assert.Equal(t, "bank", state.Payment.Method)

	state, err = f.checkout.Back(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.StepShipping, state.Step)
	require.NotNil(t, state.Shipping)
	assert.Equal(t, "ivan@example.com", state.Shipping.Email)

	// с первого шага назад идти некуда
	_, err = f.checkout.Back(ctx, 1)
	assert.ErrorIs(t, err, service.ErrInvalidStep)
}

func TestCheckout_ConfirmOnlyFromReview(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)

	_, err = f.checkout.Confirm(ctx, 1)
	assert.ErrorIs(t, err, service.ErrInvalidStep)
}

// полный проход: 19.99 x 2 -> subtotal 39.98, доставка 9.99, налог 3.1984, итого 53.1684
func TestCheckout_ConfirmComputesTotalsAndClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, 1, 1, 2)
	require.NoError(t, err)
	_, err = f.checkout.SubmitShipping(ctx, 1, validShipping())
	require.NoError(t, err)
	_, err = f.checkout.SubmitPayment(ctx, 1, service.PaymentForm{
		Method:     "credit",
		CardNumber: "4111111111111111", CardName: "IVAN PETROV",
		CardExpiryMonth: "12", CardExpiryYear: "2027", CardCVV: "123",
	})
	require.NoError(t, err)

	state, err := f.checkout.Confirm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.StepConfirmation, state.Step)

	require.NotNil(t, state.Totals)
	assert.True(t, state.Totals.Subtotal.Equal(decimal.RequireFromString("39.98")), "subtotal: %s", state.Totals.Subtotal)
	assert.True(t, state.Totals.Shipping.Equal(decimal.RequireFromString("9.99")), "shipping: %s", state.Totals.Shipping)
	assert.True(t, state.Totals.Tax.Equal(decimal.RequireFromString("3.1984")), "tax: %s", state.Totals.Tax)
	assert.True(t, state.Totals.Total.Equal(decimal.RequireFromString("53.1684")), "total: %s", state.Totals.Total)

	require.NotNil(t, state.Order)
	assert.True(t, state.Order.Total.Equal(decimal.RequireFromString("53.1684")))

	// корзина очищена
	cart, err := f.cartSvc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// данные карты после подтверждения не хранятся
	require.NotNil(t, state.Payment)
	assert.Equal(t, "credit", state.Payment.Method)
	assert.Empty(t, state.Payment.CardNumber)
	assert.Empty(t, state.Payment.CardCVV)
}

type failingOrderRepo struct {
	storage.OrderStorage
}

func (f *failingOrderRepo) CreateOrder(ctx context.Context, userID int64, total decimal.Decimal, items []storage.OrderItemInput) (*models.Order, error) {
	return nil, errors.New("backend unavailable")
}

// при ошибке создания заказа пользователь остаётся на review, корзина не трогается
func TestCheckout_ConfirmFailureStaysOnReview(t *testing.T) {
	store := storage.NewStorage()
	store.AddProduct(models.Product{Name: "Mug", Price: decimal.RequireFromString("9.50"), InStock: true})

	cartSvc := service.NewCartService(testLogger(), storage.NewCartRepository(store))
	checkout := service.NewCheckoutService(
		testLogger(), cartSvc, &failingOrderRepo{},
		decimal.RequireFromString("9.99"), decimal.RequireFromString("0.08"),
	)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)
	_, err = checkout.SubmitShipping(ctx, 1, validShipping())
	require.NoError(t, err)
	_, err = checkout.SubmitPayment(ctx, 1, service.PaymentForm{Method: "bank"})
	require.NoError(t, err)

	_, err = checkout.Confirm(ctx, 1)
	require.Error(t, err)

	state, err := checkout.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.StepReview, state.Step)

	cart, err := cartSvc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1, "cart must stay intact after a failed confirm")
}

// после подтверждения и нового наполнения корзины оформление начинается заново
func TestCheckout_NewSessionAfterConfirmation(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddItem(ctx, 1, 1, 1)
	require.NoError(t, err)
	_, err = f.checkout.SubmitShipping(ctx, 1, validShipping())
	require.NoError(t, err)
	_, err = f.checkout.SubmitPayment(ctx, 1, service.PaymentForm{Method: "paypal"})
	require.NoError(t, err)
	_, err = f.checkout.Confirm(ctx, 1)
	require.NoError(t, err)

	// состояние confirmation доступно и при пустой корзине
	state, err := f.checkout.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.StepConfirmation, state.Step)

	// новая корзина — новый проход с shipping
	_, err = f.cartSvc.AddItem(ctx, 1, 2, 1)
	require.NoError(t, err)
	state, err = f.checkout.Current(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.StepShipping, state.Step)
}
