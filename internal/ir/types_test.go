package ir

import "testing"

func TestPrimitiveSizes(t *testing.T) {
	cases := []struct {
		t    Type
		want int
	}{
		{Type{Kind: Int8}, 1},
		{Type{Kind: UInt8}, 1},
		{Type{Kind: Bool}, 1},
		{Type{Kind: Int16}, 2},
		{Type{Kind: Int32}, 4},
		{Type{Kind: Float32}, 4},
		{Type{Kind: Int64}, 8},
		{Type{Kind: Float64}, 8},
		{Type{Kind: Void}, 0},
		{NewPointer(Type{Kind: Int32}), 8},
	}
	for _, c := range cases {
		if got := c.t.Size(); got != c.want {
			t.Errorf("%s.Size() = %d, want %d", c.t, got, c.want)
		}
	}
}

func TestTypePredicates(t *testing.T) {
	int32Type := Type{Kind: Int32}
	uint32Type := Type{Kind: UInt32}
	float64Type := Type{Kind: Float64}
	pointerType := NewPointer(Type{Kind: Int32})

	if !int32Type.IsInteger() {
		t.Error("Int32.IsInteger() = false, want true")
	}
	if !int32Type.IsSigned() {
		t.Error("Int32.IsSigned() = false, want true")
	}
	if uint32Type.IsSigned() {
		t.Error("UInt32.IsSigned() = true, want false")
	}
	if !float64Type.IsFloat() {
		t.Error("Float64.IsFloat() = false, want true")
	}
	if !pointerType.IsPointer() {
		t.Error("Pointer.IsPointer() = false, want true")
	}
}

func TestDefaultIdentifierTypeIsInt64(t *testing.T) {
	id := NewIdentifier("x")
	if id.Type.Kind != Int64 {
		t.Errorf("NewIdentifier type = %v, want Int64", id.Type)
	}
}
