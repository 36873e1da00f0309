package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/storefront/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/storefront/internal/service"
)

// writeCheckoutState сериализует состояние оформления; ошибки шагов
// транслируются в коды ответов единообразно для всех обработчиков.
func writeCheckoutState(w http.ResponseWriter, logger *slog.Logger, state *service.CheckoutState, err error) {
	if err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			// транспортный слой уводит пользователя из оформления
			http.Error(w, "cart is empty", http.StatusConflict)
		case errors.Is(err, service.ErrInvalidStep):
			http.Error(w, "operation is not allowed at the current step", http.StatusConflict)
		case errors.As(err, &validationErrs):
			http.Error(w, "validation error", http.StatusBadRequest)
		default:
			logger.Error("checkout step failed", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// CheckoutStateHandler обрабатывает запрос GET /api/checkout
func CheckoutStateHandler(log *slog.Logger, checkoutService service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutStateHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		state, err := checkoutService.Current(r.Context(), userID)
		writeCheckoutState(w, logger, state, err)
	}
}

// CheckoutShippingHandler обрабатывает запрос POST /api/checkout/shipping
func CheckoutShippingHandler(log *slog.Logger, checkoutService service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutShippingHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var form service.ShippingForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		state, err := checkoutService.SubmitShipping(r.Context(), userID, form)
		writeCheckoutState(w, logger, state, err)
	}
}

// CheckoutPaymentHandler обрабатывает запрос POST /api/checkout/payment
func CheckoutPaymentHandler(log *slog.Logger, checkoutService service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutPaymentHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var form service.PaymentForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		state, err := checkoutService.SubmitPayment(r.Context(), userID, form)
		writeCheckoutState(w, logger, state, err)
	}
}

// CheckoutBackHandler обрабатывает запрос POST /api/checkout/back
func CheckoutBackHandler(log *slog.Logger, checkoutService service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutBackHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		state, err := checkoutService.Back(r.Context(), userID)
		writeCheckoutState(w, logger, state, err)
	}
}

// CheckoutConfirmHandler обрабатывает запрос POST /api/checkout/confirm
func CheckoutConfirmHandler(log *slog.Logger, checkoutService service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutConfirmHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		state, err := checkoutService.Confirm(r.Context(), userID)
		writeCheckoutState(w, logger, state, err)
	}
}
