package columns

import (
	"errors"
	"testing"
)

func TestParseWidth(t *testing.T) {
	tests := []struct {
		in      string
		want    Width
		wantErr bool
	}{
		{in: "320px", want: Width{Value: 320, Unit: "px"}},
		{in: "33.5%", want: Width{Value: 33.5, Unit: "%"}},
		{in: " 1.5EM ", want: Width{Value: 1.5, Unit: "em"}},
		{in: "0", want: Width{}},
		{in: "-10px", want: Width{Value: -10, Unit: "px"}},
		{in: "", wantErr: true},
		{in: "10", wantErr: true},
		{in: "px", wantErr: true},
		{in: "10furlongs", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWidth(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadWidth) {
					t.Fatalf("ParseWidth(%q) error = %v, want ErrBadWidth", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWidth(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseWidth(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSumFixed(t *testing.T) {
	widths := []Width{Percentage(50), FixedLength(200, "px"), FixedLength(2, "em"), FixedLength(100, "px"), {}}
	sum := SumFixed(widths)

	if got := sum.String(); got != "300px + 2em" {
		t.Errorf("SumFixed().String() = %q, want %q", got, "300px + 2em")
	}
	if _, ok := sum.Single(); ok {
		t.Error("Single() on two units reported ok")
	}
	if got := sum.Scale(0.5).String(); got != "150px + 1em" {
		t.Errorf("Scale(0.5) = %q, want %q", got, "150px + 1em")
	}

	empty := SumFixed([]Width{Percentage(100)})
	if !empty.IsZero() || empty.String() != "0" {
		t.Errorf("SumFixed(percentages) = %q, want empty", empty.String())
	}
}
