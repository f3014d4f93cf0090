package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
)

type sentPayload struct {
	From struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"from"`
	Subject          string `json:"subject"`
	Personalizations []struct {
		To []struct {
			Email string `json:"email"`
		} `json:"to"`
		CC []struct {
			Email string `json:"email"`
		} `json:"cc"`
	} `json:"personalizations"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
	Attachments []struct {
		Content     string `json:"content"`
		Type        string `json:"type"`
		Filename    string `json:"filename"`
		Disposition string `json:"disposition"`
	} `json:"attachments"`
}

func testMessage() Message {
	return Message{
		From:     "info@exilex.com",
		FromName: "Exilex Legal Professional Corporation",
		To:       "buyer@example.com",
		CC:       []string{"info@exilex.com"},
		Subject:  "Your Exilex Closing Costs Estimate",
		Text:     "Please find attached your closing costs estimate (PDF).",
		Attachments: []Attachment{{
			Filename:    "closing-costs-estimate.pdf",
			ContentType: "application/pdf",
			Content:     []byte("%PDF-1.3 test"),
		}},
	}
}

func TestNewSendGridClient_RequiresKey(t *testing.T) {
	_, err := NewSendGridClient("  ", "")
	assert.ErrorIs(t, err, apperrors.ErrMailNotConfigured)

	c, err := NewSendGridClient("key", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSendGridHost, c.host)
}

func TestSendGridClient_Send(t *testing.T) {
	var got sentPayload
	var authHeader, path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		authHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c, err := NewSendGridClient("test-key", srv.URL)
	require.NoError(t, err)

	require.NoError(t, c.Send(context.Background(), testMessage()))

	assert.Equal(t, "/v3/mail/send", path)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "info@exilex.com", got.From.Email)
	assert.Equal(t, "Your Exilex Closing Costs Estimate", got.Subject)
	require.Len(t, got.Personalizations, 1)
	require.Len(t, got.Personalizations[0].To, 1)
	assert.Equal(t, "buyer@example.com", got.Personalizations[0].To[0].Email)
	require.Len(t, got.Personalizations[0].CC, 1)
	assert.Equal(t, "info@exilex.com", got.Personalizations[0].CC[0].Email)
	require.Len(t, got.Content, 1)
	assert.Equal(t, "text/plain", got.Content[0].Type)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "closing-costs-estimate.pdf", got.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", got.Attachments[0].Type)
	assert.Equal(t, "attachment", got.Attachments[0].Disposition)

	decoded, err := base64.StdEncoding.DecodeString(got.Attachments[0].Content)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 test", string(decoded))
}

func TestSendGridClient_SendErrorIncludesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"The provided authorization grant is invalid"}]}`))
	}))
	defer srv.Close()

	c, err := NewSendGridClient("bad-key", srv.URL)
	require.NoError(t, err)

	err = c.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "authorization grant is invalid")
}

func TestBuildV3Mail_DropsDuplicateCC(t *testing.T) {
	msg := testMessage()
	msg.To = "INFO@exilex.com"

	m := buildV3Mail(msg)

	require.Len(t, m.Personalizations, 1)
	assert.Empty(t, m.Personalizations[0].CC)
}
