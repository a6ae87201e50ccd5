package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := LoginRequest{
		Username: "  ops.lead  ",
		Password: "  pass1234  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "ops.lead", req.Username)
	assert.Equal(t, "pass1234", req.Password)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := FlagWalletRequest{
		Reason: "flagged by <script>alert('x')</script> report",
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.Reason, "&lt;script&gt;")
	assert.NotContains(t, req.Reason, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	notes := "  prefers morning pickups  "
	req := VendorRequest{
		Name:  "Aurum Point Andheri",
		Notes: &notes,
	}
	SanitizeStruct(&req)

	assert.Equal(t, "prefers morning pickups", *req.Notes)
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	req := VendorRequest{
		Name:  "Aurum Point Andheri",
		Notes: nil,
	}
	SanitizeStruct(&req)
	assert.Nil(t, req.Notes)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

func TestSanitizeStruct_ShipOrderRequest(t *testing.T) {
	req := ShipOrderRequest{
		Partner:   "  BlueDart  ",
		AWBNumber: " AWB-9981 ",
		Note:      "handle <b>with care</b>",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "BlueDart", req.Partner)
	assert.Equal(t, "AWB-9981", req.AWBNumber)
	assert.Equal(t, "handle &lt;b&gt;with care&lt;/b&gt;", req.Note)
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"RD-10023",
		"VLT_A1B2",
		"a.b.c",
		"simple123",
		"VEN-a1b2_C3.4",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"RD 10023",    // space
		"RD<10023>",   // angle brackets
		"RD;DROP",     // semicolon
		"",            // empty
		"hello world", // space
		"RD\n10023",   // newline
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}
