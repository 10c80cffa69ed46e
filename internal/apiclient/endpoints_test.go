package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"frontend/internal/domain"
)

func newBackend(t *testing.T, routes map[string]http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, h := range routes {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func jsonReply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func TestListPassengersUnwrapsEnvelope(t *testing.T) {
	c := newBackend(t, map[string]http.HandlerFunc{
		"/passengers": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("booking_id") != "12" {
				t.Errorf("booking filter missing: %s", r.URL.RawQuery)
			}
			jsonReply(`{"data":[{"id":1,"name":"Asha"},{"id":2,"name":"Ravi"}]}`)(w, r)
		},
	})

	ps, err := c.ListPassengers(context.Background(), 12)
	if err != nil {
		t.Fatalf("ListPassengers: %v", err)
	}
	if len(ps) != 2 || ps[1].FullName != "Ravi" {
		t.Fatalf("unexpected passengers %+v", ps)
	}
}

func TestListFlightsBareArray(t *testing.T) {
	c := newBackend(t, map[string]http.HandlerFunc{
		"/flights": jsonReply(`[{"id":3,"flight_number":"AI-101"}]`),
	})
	fs, err := c.ListFlights(context.Background())
	if err != nil || len(fs) != 1 || fs[0].FlightNumber != "AI-101" {
		t.Fatalf("unexpected flights %+v err=%v", fs, err)
	}
}

func TestUnwrapListRejectsScalars(t *testing.T) {
	if _, err := unwrapList[int]([]byte(`"oops"`)); err == nil {
		t.Fatalf("expected error for scalar payload")
	}
	out, err := unwrapList[int]([]byte(`null`))
	if err != nil || len(out) != 0 {
		t.Fatalf("null should be an empty list, got %v %v", out, err)
	}
}

func TestUnwrapObjectAcceptsEnvelope(t *testing.T) {
	type item struct {
		ID int `json:"id"`
	}
	got, err := unwrapObject[item]([]byte(`{"data":{"id":4},"message":"ok"}`))
	if err != nil || got.ID != 4 {
		t.Fatalf("enveloped object: %+v %v", got, err)
	}
	got, err = unwrapObject[item]([]byte(`{"id":5}`))
	if err != nil || got.ID != 5 {
		t.Fatalf("bare object: %+v %v", got, err)
	}
}

func TestLoginParsesRole(t *testing.T) {
	c := newBackend(t, map[string]http.HandlerFunc{
		"/users/login": func(w http.ResponseWriter, r *http.Request) {
			var req LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Email != "a@b.test" {
				t.Errorf("unexpected login body %+v", req)
			}
			jsonReply(`{"token":"abc","user":{"id":9,"name":"A","email":"a@b.test","role":"2"}}`)(w, r)
		},
	})
	res, err := c.Login(context.Background(), LoginRequest{Email: "a@b.test", Password: "x"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "abc" || res.User.Role != domain.RoleAgent {
		t.Fatalf("unexpected login result %+v", res)
	}
}

func TestLoginWithoutToken(t *testing.T) {
	c := newBackend(t, map[string]http.HandlerFunc{
		"/users/login": jsonReply(`{"user":{"id":1}}`),
	})
	if _, err := c.Login(context.Background(), LoginRequest{}); err == nil {
		t.Fatalf("expected error when token is missing")
	}
}

func TestCreatePaymentRequiresBooking(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.CreatePayment(context.Background(), PaymentRequest{Amount: 10})
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
