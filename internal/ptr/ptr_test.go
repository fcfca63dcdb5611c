package ptr_test

import (
	"testing"

	"github.com/sdeery14/fitness-app-sub000/internal/ptr"
)

func TestRef(t *testing.T) {
	sets := 3
	p := ptr.Ref(sets)
	if p == nil || *p != 3 {
		t.Fatalf("Ref(3) = %v", p)
	}
	sets = 5
	if *p != 3 {
		t.Errorf("pointer should not follow the original variable, got %d", *p)
	}
}

func TestDeref(t *testing.T) {
	tests := []struct {
		name string
		p    *float64
		want float64
	}{
		{name: "nil uses fallback", p: nil, want: -1},
		{name: "value", p: ptr.Ref(5000.0), want: 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ptr.Deref(tt.p, -1); got != tt.want {
				t.Errorf("Deref() = %v, want %v", got, tt.want)
			}
		})
	}
}
