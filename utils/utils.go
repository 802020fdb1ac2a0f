// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: utils.go - zero-alloc formatting and raw console output
//
// Purpose:
//   - Integer/hex formatting for log lines without fmt.
//   - Direct writes to stdout/stderr for the debug package.
//
// Notes:
//   - Output files are package variables so tests can redirect them.
// ─────────────────────────────────────────────────────────────────────────────

package utils

import (
	"os"
	"unsafe"
)

var (
	// InfoOut receives PrintInfo lines.
	InfoOut = os.Stdout
	// WarnOut receives PrintWarning lines.
	WarnOut = os.Stderr
)

///////////////////////////////////////////////////////////////////////////////
// Conversion Utilities - Zero-Alloc Casts
///////////////////////////////////////////////////////////////////////////////

// B2s converts a []byte to a string **without** allocation.
// ⚠️ Caller must ensure the input slice remains valid and unchanged.
//
//go:nosplit
//go:inline
func B2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

///////////////////////////////////////////////////////////////////////////////
// Integer Formatting
///////////////////////////////////////////////////////////////////////////////

// Itoa formats a signed integer in base 10.
func Itoa(n int) string {
	if n >= 0 {
		return Utoa(uint64(n))
	}
	return "-" + Utoa(uint64(-n))
}

// Utoa formats an unsigned integer in base 10.
func Utoa(u uint64) string {
	if u == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}

// Hex formats u as 0x-prefixed lowercase hex with no leading zeros.
func Hex(u uint64) string {
	const digits = "0123456789abcdef"
	if u == 0 {
		return "0x0"
	}
	var buf [18]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = digits[u&0xf]
		u >>= 4
	}
	i--
	buf[i] = 'x'
	i--
	buf[i] = '0'
	return string(buf[i:])
}

///////////////////////////////////////////////////////////////////////////////
// Console Output
///////////////////////////////////////////////////////////////////////////////

// PrintInfo writes msg to InfoOut as-is.
//
//go:nosplit
func PrintInfo(msg string) {
	_, _ = InfoOut.WriteString(msg)
}

// PrintWarning writes msg to WarnOut as-is.
//
//go:nosplit
func PrintWarning(msg string) {
	_, _ = WarnOut.WriteString(msg)
}
