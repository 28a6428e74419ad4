package parse

import (
	"testing"
	"time"

	"github.com/laralog/laralog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleEntry(t *testing.T) {
	rec := Parse("[2024-01-02 09:00:00] local.INFO: ok")

	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), rec.Timestamp)
	assert.True(t, rec.HasTimestamp())
	assert.Equal(t, domain.SeverityInfo, rec.Severity)
	assert.Equal(t, "local", rec.Channel)
	assert.Equal(t, "ok", rec.Summary)
	assert.Empty(t, rec.Body)
	assert.Equal(t, domain.BodyNone, rec.BodyKind)
	assert.Equal(t, "[2024-01-02 09:00:00] local.INFO: ok", rec.Raw)
}

func TestParse_StackTraceBody(t *testing.T) {
	raw := "[2024-01-01 10:00:00] local.ERROR: boom\n[stacktrace...]"
	rec := Parse(raw)

	assert.Equal(t, domain.SeverityError, rec.Severity)
	assert.Equal(t, "boom", rec.Summary)
	assert.Equal(t, []string{"[stacktrace...]"}, rec.Body)
	assert.Equal(t, domain.BodyStackTrace, rec.BodyKind)
	assert.Equal(t, raw, rec.Raw)
}

func TestParse_UnknownSeverity(t *testing.T) {
	rec := Parse("[2024-01-01 10:00:00] local.BOGUS: strange")

	assert.Equal(t, domain.SeverityUnknown, rec.Severity)
	assert.Equal(t, "strange", rec.Summary)
}

func TestParse_SeverityCaseInsensitive(t *testing.T) {
	for _, token := range []string{"ERROR", "error", "Error"} {
		rec := Parse("[2024-01-01 10:00:00] local." + token + ": x")
		assert.Equal(t, domain.SeverityError, rec.Severity, "token %s", token)
	}
}

func TestParse_MalformedTimestamp(t *testing.T) {
	rec := Parse("[not a date] local.ERROR: boom")

	assert.False(t, rec.HasTimestamp())
	assert.Equal(t, domain.SeverityError, rec.Severity)
	assert.Equal(t, "boom", rec.Summary)
}

func TestParse_HeaderWithoutLevelToken(t *testing.T) {
	rec := Parse("[2024-01-01 10:00:00] something odd happened")

	assert.True(t, rec.HasTimestamp())
	assert.Equal(t, domain.SeverityUnknown, rec.Severity)
	assert.Equal(t, "something odd happened", rec.Summary)
}

func TestParse_GarbageLine(t *testing.T) {
	rec := Parse("complete nonsense")

	assert.False(t, rec.HasTimestamp())
	assert.Equal(t, domain.SeverityUnknown, rec.Severity)
	assert.Equal(t, "complete nonsense", rec.Summary)
}

func TestParse_ExceptionPayload(t *testing.T) {
	raw := `[2024-01-01 10:00:00] production.ERROR: {"exception":"RuntimeException: it broke\n#0 /app/Kernel.php(42)\n#1 {main}"}`
	rec := Parse(raw)

	assert.Equal(t, domain.SeverityError, rec.Severity)
	assert.Equal(t, "production", rec.Channel)
	assert.Equal(t, "RuntimeException: it broke", rec.Summary)
	assert.Equal(t, domain.BodyStructured, rec.BodyKind)
	require.Len(t, rec.Body, 3)
	assert.Equal(t, "#1 {main}", rec.Body[2])
}

func TestParse_JSONPayloadWithoutException(t *testing.T) {
	rec := Parse(`[2024-01-01 10:00:00] local.INFO: {"user_id":7,"action":"login"}`)

	assert.Equal(t, domain.BodyStructured, rec.BodyKind)
	// Summary keeps the raw payload; body is the pretty-printed form.
	assert.Contains(t, rec.Summary, `"user_id"`)
	assert.NotEmpty(t, rec.Body)
	assert.Equal(t, "{", rec.Body[0])
}

func TestParse_StructuredBodyBlock(t *testing.T) {
	raw := "[2024-01-01 10:00:00] local.DEBUG: context follows\n{\"key\": \"value\"}"
	rec := Parse(raw)

	assert.Equal(t, "context follows", rec.Summary)
	assert.Equal(t, domain.BodyStructured, rec.BodyKind)
}

func TestParse_InvalidUTF8Sanitized(t *testing.T) {
	raw := "[2024-01-01 10:00:00] local.ERROR: bad \xff\xfe bytes"
	rec := Parse(raw)

	assert.Contains(t, rec.Summary, "�")
	// Raw keeps the original bytes untouched.
	assert.Equal(t, raw, rec.Raw)
}

func TestParse_Pure(t *testing.T) {
	raw := "[2024-01-01 10:00:00] local.ERROR: boom\ntrace"
	assert.Equal(t, Parse(raw), Parse(raw))
}

func TestParse_ChannelWithDashes(t *testing.T) {
	rec := Parse("[2024-01-01 10:00:00] my-channel.WARNING: careful")

	assert.Equal(t, "my-channel", rec.Channel)
	assert.Equal(t, domain.SeverityWarning, rec.Severity)
}
