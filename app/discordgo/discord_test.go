package discord

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func newTestSession(t *testing.T, handler http.HandlerFunc) *DiscordSession {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	originalEndpointGuilds := discordgo.EndpointGuilds
	discordgo.EndpointGuilds = server.URL + "/guilds/"
	t.Cleanup(func() {
		discordgo.EndpointGuilds = originalEndpointGuilds
	})

	underlying, err := discordgo.New("Bot unit-test-token")
	if err != nil {
		t.Fatalf("failed to create discordgo session: %v", err)
	}
	underlying.Client = server.Client()

	return NewDiscordSession(underlying, testLogger(), WithReadRetries(0))
}

func TestDiscordSession_GuildStickers_DecodesList(t *testing.T) {
	var gotMethod, gotPath string
	session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":"s1","name":"wave"},{"id":"s2","name":"cheer"}]`)
	})

	stickers, err := session.GuildStickers("g1")
	if err != nil {
		t.Fatalf("GuildStickers returned error: %v", err)
	}
	if gotMethod != http.MethodGet {
		t.Fatalf("expected GET request, got %q", gotMethod)
	}
	if gotPath != "/guilds/g1/stickers" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if len(stickers) != 2 || stickers[0].ID != "s1" || stickers[1].Name != "cheer" {
		t.Fatalf("unexpected stickers: %+v", stickers)
	}
}

func TestDiscordSession_GuildStickerCreate_SendsFormFields(t *testing.T) {
	fields := map[string]string{}
	var fileType, fileBody, fileName string

	session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/guilds/g1/stickers" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("expected multipart body, got %q", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		reader := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := reader.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(part)
			if part.FormName() == "file" {
				fileType = part.Header.Get("Content-Type")
				fileName = part.FileName()
				fileBody = string(data)
				continue
			}
			fields[part.FormName()] = string(data)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"s9","name":"wave"}`)
	})

	sticker, err := session.GuildStickerCreate("g1", &StickerParams{
		Name:        "wave",
		Description: "hello there",
		Tags:        "wave",
		File:        &discordgo.File{Name: "wave.png", Reader: strings.NewReader("PNGDATA")},
	})
	if err != nil {
		t.Fatalf("GuildStickerCreate returned error: %v", err)
	}
	if sticker.ID != "s9" {
		t.Errorf("expected sticker s9, got %q", sticker.ID)
	}
	if fields["name"] != "wave" || fields["description"] != "hello there" || fields["tags"] != "wave" {
		t.Errorf("unexpected form fields: %v", fields)
	}
	if _, ok := fields["payload_json"]; ok {
		t.Error("sticker upload must not carry payload_json")
	}
	if fileName != "wave.png" || fileBody != "PNGDATA" {
		t.Errorf("unexpected file part %q: %q", fileName, fileBody)
	}
	if fileType != "image/png" {
		t.Errorf("expected default image/png content type, got %q", fileType)
	}
}

func TestDiscordSession_GuildStickerCreate_RequiresFile(t *testing.T) {
	session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s %s", r.Method, r.URL.Path)
	})

	if _, err := session.GuildStickerCreate("g1", &StickerParams{Name: "wave"}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDiscordSession_GuildStickerDelete(t *testing.T) {
	var gotMethod, gotPath string
	session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := session.GuildStickerDelete("g1", "s1"); err != nil {
		t.Fatalf("GuildStickerDelete returned error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/guilds/g1/stickers/s1" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
}

func TestDiscordSession_Readiness(t *testing.T) {
	underlying, err := discordgo.New("Bot unit-test-token")
	if err != nil {
		t.Fatalf("failed to create discordgo session: %v", err)
	}
	session := NewDiscordSession(underlying, testLogger())

	if session.IsReady() {
		t.Fatal("session should not be ready before the gateway handshake")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := session.WaitReady(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	session.markReady(true)
	if !session.IsReady() {
		t.Fatal("expected session to be ready")
	}
	if err := session.WaitReady(context.Background()); err != nil {
		t.Fatalf("WaitReady after ready returned %v", err)
	}

	session.markReady(false)
	if session.IsReady() {
		t.Fatal("expected disconnect to clear readiness")
	}
	session.markReady(true)
	if !session.IsReady() {
		t.Fatal("expected resume to restore readiness")
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func restError(status int) error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: status}}
}

func TestIsRetryableDiscordError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", restError(http.StatusTooManyRequests), true},
		{"server error", restError(http.StatusServiceUnavailable), true},
		{"forbidden", restError(http.StatusForbidden), false},
		{"not found", restError(http.StatusNotFound), false},
		{"rest error without response", &discordgo.RESTError{}, false},
		{"network timeout", timeoutErr{}, true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableDiscordError(tt.err); got != tt.want {
				t.Errorf("isRetryableDiscordError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetryDiscordAPI(t *testing.T) {
	t.Run("retries transient failures", func(t *testing.T) {
		calls := 0
		err := RetryDiscordAPI(context.Background(), testLogger(), "test", 3, func() error {
			calls++
			if calls < 3 {
				return restError(http.StatusBadGateway)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("does not retry permanent failures", func(t *testing.T) {
		calls := 0
		want := restError(http.StatusForbidden)
		err := RetryDiscordAPI(context.Background(), testLogger(), "test", 3, func() error {
			calls++
			return want
		})
		if !errors.Is(err, want) {
			t.Fatalf("expected original error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected a single call, got %d", calls)
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := RetryDiscordAPI(context.Background(), nil, "test", 1, func() error {
			calls++
			return restError(http.StatusTooManyRequests)
		})
		if err == nil {
			t.Fatal("expected error after retries are exhausted")
		}
		if calls != 2 {
			t.Errorf("expected 2 calls, got %d", calls)
		}
	})
}

func TestRequestContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if got := requestContext(nil); got.Err() != nil {
		t.Fatalf("expected a live background context, got %v", got.Err())
	}
	got := requestContext([]discordgo.RequestOption{discordgo.WithAuditLogReason("x"), discordgo.WithContext(ctx)})
	cancel()
	if !errors.Is(got.Err(), context.Canceled) {
		t.Fatalf("expected the option's context, got err %v", got.Err())
	}
}

func TestDiscordSession_ReadRetriesStopWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	session := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		cancel()
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	session.readRetries = 3

	if _, err := session.GuildStickers("g1", discordgo.WithContext(ctx)); err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Fatalf("expected retries to stop after cancellation, got %d calls", calls)
	}
}
