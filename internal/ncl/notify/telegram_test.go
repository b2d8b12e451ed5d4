package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeBotAPI serves just enough of the Telegram Bot API for the notifier:
// getMe during authorization and sendMessage for deliveries. The returned
// map holds the form values of the last sendMessage call.
func fakeBotAPI(t *testing.T, sendStatus int, sendBody string) (*httptest.Server, map[string]string) {
	t.Helper()
	lastSend := map[string]string{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"watch","username":"watchbot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			r.ParseForm()
			lastSend["chat_id"] = r.FormValue("chat_id")
			lastSend["text"] = r.FormValue("text")
			w.WriteHeader(sendStatus)
			w.Write([]byte(sendBody))
		default:
			t.Errorf("unexpected bot API call: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, lastSend
}

func TestSend(t *testing.T) {
	srv, lastSend := fakeBotAPI(t, http.StatusOK,
		`{"ok":true,"result":{"message_id":1,"chat":{"id":-1002852664251},"date":1}}`)

	tg, err := NewTelegram("TESTTOKEN", "-1002852664251", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tg.Send("Base fare: $1,899"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if got := lastSend["chat_id"]; got != "-1002852664251" {
		t.Errorf("chat_id = %q, want -1002852664251", got)
	}
	if got := lastSend["text"]; got != "Base fare: $1,899" {
		t.Errorf("text = %q", got)
	}
}

func TestSendRejected(t *testing.T) {
	srv, _ := fakeBotAPI(t, http.StatusBadRequest,
		`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)

	tg, err := NewTelegram("TESTTOKEN", "42", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tg.Send("hello"); err == nil {
		t.Fatal("expected error for rejected message")
	}
}

func TestNewTelegramBadChatID(t *testing.T) {
	if _, err := NewTelegram("TESTTOKEN", "not-a-number", "http://127.0.0.1:1/bot%s/%s"); err == nil {
		t.Fatal("expected error for non-numeric chat id")
	}
}

func TestNewTelegramBadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	if _, err := NewTelegram("WRONG", "42", srv.URL+"/bot%s/%s"); err == nil {
		t.Fatal("expected authorization error")
	}
}
