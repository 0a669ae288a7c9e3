package wire

import (
	"math"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
	}{
		{"zero", 0},
		{"one", 1},
		{"max_1byte", 127},
		{"min_2byte", 128},
		{"medium", 1000000},
		{"max_uint32", math.MaxUint32},
		{"max_uint64", math.MaxUint64},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEncoder()
			e.WriteUvarint(tc.value)

			d := NewDecoder(e.Bytes())
			got, err := d.ReadUvarint()
			if err != nil {
				t.Fatalf("ReadUvarint: %v", err)
			}
			if got != tc.value {
				t.Errorf("got %d, want %d", got, tc.value)
			}
			if !d.EOF() {
				t.Errorf("%d bytes left over", d.Remaining())
			}
		})
	}
}

func TestSvarintRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 100, -100, math.MaxInt64, math.MinInt64}

	for _, v := range values {
		e := NewEncoder()
		e.WriteSvarint(v)

		d := NewDecoder(e.Bytes())
		got, err := d.ReadSvarint()
		if err != nil || got != v {
			t.Errorf("round trip of %d = %d, %v", v, got, err)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	tests := []string{"", "a", "hello world", "héllo ünïcode", string(make([]byte, 1000))}

	for _, s := range tests {
		e := NewEncoder()
		e.WriteString(s)

		d := NewDecoder(e.Bytes())
		got, err := d.ReadString()
		if err != nil || got != s {
			t.Errorf("round trip of %q failed: %q, %v", s, got, err)
		}
	}
}

func TestBoolRoundTrip(t *testing.T) {
	e := NewEncoder()
	e.WriteBool(true)
	e.WriteBool(false)

	d := NewDecoder(e.Bytes())
	if v, err := d.ReadBool(); err != nil || !v {
		t.Errorf("ReadBool = %v, %v; want true", v, err)
	}
	if v, err := d.ReadBool(); err != nil || v {
		t.Errorf("ReadBool = %v, %v; want false", v, err)
	}
}

func TestReadBoolInvalid(t *testing.T) {
	d := NewDecoder([]byte{0x07})
	if _, err := d.ReadBool(); err != ErrInvalidBool {
		t.Errorf("err = %v, want ErrInvalidBool", err)
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	values := []float64{0, 1.5, -2.25, math.MaxFloat64, math.SmallestNonzeroFloat64}

	for _, v := range values {
		e := NewEncoder()
		e.WriteFloat64(v)

		d := NewDecoder(e.Bytes())
		got, err := d.ReadFloat64()
		if err != nil || got != v {
			t.Errorf("round trip of %g = %g, %v", v, got, err)
		}
	}
}

func TestDecoderTruncated(t *testing.T) {
	e := NewEncoder()
	e.WriteString("hello")
	data := e.Bytes()

	// Every proper prefix must fail cleanly, never panic.
	for i := 0; i < len(data); i++ {
		d := NewDecoder(data[:i])
		if _, err := d.ReadString(); err == nil {
			t.Errorf("prefix of %d bytes decoded without error", i)
		}
	}
}

func TestDecoderStringAllocationLimit(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(MaxAllocation + 1)

	d := NewDecoder(e.Bytes())
	if _, err := d.ReadString(); err != ErrAllocationTooLarge {
		t.Errorf("err = %v, want ErrAllocationTooLarge", err)
	}
}

func TestEncoderReset(t *testing.T) {
	e := NewEncoder()
	e.WriteString("junk")
	e.Reset()

	if e.Len() != 0 {
		t.Errorf("Len after Reset = %d", e.Len())
	}
}
