//go:build cgo && cgoprobe

package machine

/*
#include <limits.h>
#include <stdio.h>
#include <string.h>

static size_t tmpl_sizeof(int t)
{
	switch (t) {
	case 0: return sizeof(unsigned char);
	case 1: return sizeof(unsigned short);
	case 2: return sizeof(unsigned int);
	case 3: return sizeof(unsigned long);
	case 4: return sizeof(unsigned long long);
	case 5: return sizeof(float);
	case 6: return sizeof(double);
	case 7: return sizeof(long double);
	}
	return 0;
}

static unsigned long long tmpl_mul(int t, unsigned long long a, unsigned long long b)
{
	switch (t) {
	case 0: return (unsigned char)((unsigned int)(unsigned char)a * (unsigned int)(unsigned char)b);
	case 1: return (unsigned short)((unsigned int)(unsigned short)a * (unsigned int)(unsigned short)b);
	case 2: return (unsigned int)((unsigned int)a * (unsigned int)b);
	case 3: return (unsigned long)((unsigned long)a * (unsigned long)b);
	}
	return a * b;
}

static unsigned long long tmpl_add(int t, unsigned long long a, unsigned long long b)
{
	switch (t) {
	case 0: return (unsigned char)((unsigned int)(unsigned char)a + (unsigned int)(unsigned char)b);
	case 1: return (unsigned short)((unsigned int)(unsigned short)a + (unsigned int)(unsigned short)b);
	case 2: return (unsigned int)((unsigned int)a + (unsigned int)b);
	case 3: return (unsigned long)((unsigned long)a + (unsigned long)b);
	}
	return a + b;
}

static unsigned long long tmpl_shl(int t, unsigned long long a, unsigned int n)
{
	if (n >= sizeof(unsigned long long) * CHAR_BIT)
		return 0;
	switch (t) {
	case 0: return (unsigned char)((unsigned long long)(unsigned char)a << n);
	case 1: return (unsigned short)((unsigned long long)(unsigned short)a << n);
	case 2: return (unsigned int)((unsigned long long)(unsigned int)a << n);
	case 3: return (unsigned long)((unsigned long long)(unsigned long)a << n);
	}
	return a << n;
}

static size_t tmpl_cells(int t, unsigned long long v, unsigned char *out)
{
	switch (t) {
	case 0: { unsigned char x = (unsigned char)v; memcpy(out, &x, sizeof x); return sizeof x; }
	case 1: { unsigned short x = (unsigned short)v; memcpy(out, &x, sizeof x); return sizeof x; }
	case 2: { unsigned int x = (unsigned int)v; memcpy(out, &x, sizeof x); return sizeof x; }
	case 3: { unsigned long x = (unsigned long)v; memcpy(out, &x, sizeof x); return sizeof x; }
	}
	memcpy(out, &v, sizeof v);
	return sizeof v;
}

static long long tmpl_signed_and(int t, long long a, long long b)
{
	switch (t) {
	case 0: return (signed char)a & (signed char)b;
	case 1: return (short)a & (short)b;
	case 2: return (int)a & (int)b;
	case 3: return (long)a & (long)b;
	}
	return a & b;
}

static const char tmpl_printable[] =
	" !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	"[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~";

static unsigned int tmpl_char_code(int i)
{
	return (unsigned char)tmpl_printable[i];
}

static int tmpl_is_one(int t, const unsigned char *img, size_t n)
{
	switch (t) {
	case 5: { float x; if (n != sizeof x) return 0; memcpy(&x, img, n); return x == 1.0F; }
	case 6: { double x; if (n != sizeof x) return 0; memcpy(&x, img, n); return x == 1.0; }
	case 7: { long double x; if (n != sizeof x) return 0; memcpy(&x, img, n); return x == 1.0L; }
	}
	return 0;
}

/* Halve until 1 + e/2 rounds back to 1. The volatile stores keep
   intermediates out of wider registers. */
static int tmpl_epsilon(int t, char *buf, size_t n)
{
	switch (t) {
	case 5: {
		volatile float e = 1.0F, s = 2.0F;
		for (;;) { s = 1.0F + e / 2.0F; if (s == 1.0F) break; e /= 2.0F; }
		return snprintf(buf, n, "%.40Le", (long double)e);
	}
	case 6: {
		volatile double e = 1.0, s = 2.0;
		for (;;) { s = 1.0 + e / 2.0; if (s == 1.0) break; e /= 2.0; }
		return snprintf(buf, n, "%.40Le", (long double)e);
	}
	case 7: {
		volatile long double e = 1.0L, s = 2.0L;
		for (;;) { s = 1.0L + e / 2.0L; if (s == 1.0L) break; e /= 2.0L; }
		return snprintf(buf, n, "%.40Le", e);
	}
	}
	return -1;
}
*/
import "C"

import (
	"math/big"
	"runtime"
	"unsafe"
)

func init() {
	cgoHost = func() Machine { return &Cgo{} }
}

// Cgo asks the C compiler for every primitive, including the character
// codes of its own string literals.
type Cgo struct{}

func (m *Cgo) Name() string { return "cgo/" + runtime.GOOS + "-" + runtime.GOARCH }

func (m *Cgo) Sizeof(t Type) int { return int(C.tmpl_sizeof(C.int(t))) }

func (m *Cgo) Mul(t Type, a, b uint64) uint64 {
	return uint64(C.tmpl_mul(C.int(t), C.ulonglong(a), C.ulonglong(b)))
}

func (m *Cgo) Add(t Type, a, b uint64) uint64 {
	return uint64(C.tmpl_add(C.int(t), C.ulonglong(a), C.ulonglong(b)))
}

func (m *Cgo) Shl(t Type, a uint64, n uint) uint64 {
	return uint64(C.tmpl_shl(C.int(t), C.ulonglong(a), C.uint(n)))
}

func (m *Cgo) Cells(t Type, v uint64) []uint64 {
	var buf [16]C.uchar
	n := int(C.tmpl_cells(C.int(t), C.ulonglong(v), &buf[0]))
	out := make([]uint64, n)
	for i := range n {
		out[i] = uint64(buf[i])
	}
	return out
}

func (m *Cgo) SignedAnd(t Type, a, b int64) int64 {
	return int64(C.tmpl_signed_and(C.int(t), C.longlong(a), C.longlong(b)))
}

func (m *Cgo) CharCode(i int) (uint64, bool) {
	if i < 0 || i >= PrintableCount {
		return 0, false
	}
	return uint64(C.tmpl_char_code(C.int(i))), true
}

func (m *Cgo) EqualsOne(t Type, image []byte) bool {
	if len(image) == 0 {
		return false
	}
	ok := C.tmpl_is_one(C.int(t), (*C.uchar)(unsafe.Pointer(&image[0])), C.size_t(len(image)))
	return ok != 0
}

func (m *Cgo) Epsilon(t Type) (*big.Float, bool) {
	var buf [96]C.char
	if C.tmpl_epsilon(C.int(t), &buf[0], C.size_t(len(buf))) < 0 {
		return nil, false
	}
	f, _, err := big.ParseFloat(C.GoString(&buf[0]), 10, 256, big.ToNearestEven)
	if err != nil {
		return nil, false
	}
	return f, true
}
