package payment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gunvolt24/shop_api/internal/clients/payment"
	"github.com/Gunvolt24/shop_api/internal/domain"
	"github.com/shopspring/decimal"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newClient(t *testing.T, handler http.HandlerFunc) *payment.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return payment.NewClient(payment.Config{
		APIBase:   srv.URL,
		SecretKey: "sk_test_123",
		Timeout:   2 * time.Second,
	}, noopLogger{})
}

func TestAuthorize_Succeeded(t *testing.T) {
	var gotForm map[string]string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{
			"amount":         r.PostFormValue("amount"),
			"currency":       r.PostFormValue("currency"),
			"payment_method": r.PostFormValue("payment_method"),
			"confirm":        r.PostFormValue("confirm"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","status":"succeeded"}`))
	})

	auth, err := client.Authorize(context.Background(), decimal.RequireFromString("62.48"), "usd", "pm_card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.ID != "pi_1" || auth.Status != domain.AuthAuthorized {
		t.Fatalf("unexpected auth: %+v", auth)
	}
	// Сумма уходит на провод в центах.
	if gotForm["amount"] != "6248" {
		t.Fatalf("amount on wire = %q, want 6248", gotForm["amount"])
	}
	if gotForm["currency"] != "usd" || gotForm["payment_method"] != "pm_card" || gotForm["confirm"] != "true" {
		t.Fatalf("unexpected form: %+v", gotForm)
	}
}

func TestAuthorize_RequiresCapture_TreatedAsAuthorized(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"pi_2","status":"requires_capture"}`))
	})

	auth, err := client.Authorize(context.Background(), decimal.RequireFromString("10.00"), "usd", "pm_card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.Status != domain.AuthAuthorized {
		t.Fatalf("unexpected status: %s", auth.Status)
	}
}

// Сумма <= 0 в минимальных единицах отклоняется до сетевого вызова.
func TestAuthorize_NonPositiveAmount_NoRequest(t *testing.T) {
	requests := 0
	client := newClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		requests++
	})

	for _, amount := range []string{"0", "-5.00", "0.001"} {
		_, err := client.Authorize(context.Background(), decimal.RequireFromString(amount), "usd", "pm_card")
		if !errors.Is(err, payment.ErrNonPositiveAmount) {
			t.Fatalf("amount %s: expected ErrNonPositiveAmount, got %v", amount, err)
		}
	}
	if requests != 0 {
		t.Fatalf("expected no network calls, got %d", requests)
	}
}

func TestAuthorize_CardDeclined_402(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	})

	auth, err := client.Authorize(context.Background(), decimal.RequireFromString("10.00"), "usd", "pm_card")
	if err != nil {
		t.Fatalf("decline must not be an error: %v", err)
	}
	if auth.Status != domain.AuthDeclined || auth.FailureReason != "Your card was declined." {
		t.Fatalf("unexpected auth: %+v", auth)
	}
}

func TestAuthorize_NonTerminalStatus_Declined(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"pi_3","status":"requires_action"}`))
	})

	auth, err := client.Authorize(context.Background(), decimal.RequireFromString("10.00"), "usd", "pm_card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.Status != domain.AuthDeclined {
		t.Fatalf("unexpected status: %s", auth.Status)
	}
	if auth.FailureReason != "payment resulted in status: requires_action" {
		t.Fatalf("unexpected reason: %q", auth.FailureReason)
	}
}

func TestAuthorize_ServerError_Transport(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Authorize(context.Background(), decimal.RequireFromString("10.00"), "usd", "pm_card")
	if !errors.Is(err, payment.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestAuthorize_BadJSON_Transport(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.Authorize(context.Background(), decimal.RequireFromString("10.00"), "usd", "pm_card")
	if !errors.Is(err, payment.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestAuthorize_ConnectionRefused_Transport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // адрес освобождён, соединение не установится

	client := payment.NewClient(payment.Config{
		APIBase:   srv.URL,
		SecretKey: "sk_test_123",
		Timeout:   time.Second,
	}, noopLogger{})

	_, err := client.Authorize(context.Background(), decimal.RequireFromString("10.00"), "usd", "pm_card")
	if !errors.Is(err, payment.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}
