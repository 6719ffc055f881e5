package match3

import (
	"strings"
	"testing"
)

func maskString(rows, cols int, mask []bool) string {
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < cols; c++ {
			if mask[r*cols+c] {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

func TestComputeValidAreaNormal(t *testing.T) {
	rows, cols, mask := ComputeValidArea(ShapeNormal, 4, 6)
	if rows != 4 || cols != 6 {
		t.Fatalf("dims = %dx%d, want 4x6", rows, cols)
	}
	if len(mask) != 24 {
		t.Fatalf("mask len = %d, want 24", len(mask))
	}
	for i, ok := range mask {
		if !ok {
			t.Errorf("cell %d should be valid", i)
		}
	}
}

func TestComputeValidAreaHeart(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		size       int
		want       string
	}{
		{
			name: "even minimum shrinks to odd",
			rows: 10, cols: 6, size: 5,
			want: ".O.O.\n" +
				"OOOOO\n" +
				"OOOOO\n" +
				".OOO.\n" +
				"..O..",
		},
		{
			name: "seven",
			rows: 7, cols: 9, size: 7,
			want: ".OO.OO.\n" +
				"OOOOOOO\n" +
				"OOOOOOO\n" +
				"OOOOOOO\n" +
				".OOOOO.\n" +
				"..OOO..\n" +
				"...O...",
		},
		{
			name: "single cell carves away",
			rows: 1, cols: 1, size: 1,
			want: ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols, mask := ComputeValidArea(ShapeHeart, tt.rows, tt.cols)
			if rows != tt.size || cols != tt.size {
				t.Fatalf("dims = %dx%d, want %dx%d", rows, cols, tt.size, tt.size)
			}
			if got := maskString(rows, cols, mask); got != tt.want {
				t.Errorf("mask =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestHeartMirrorSymmetric(t *testing.T) {
	for n := 1; n <= 25; n++ {
		rows, cols, mask := ComputeValidArea(ShapeHeart, n, n+3)
		if rows%2 == 0 && rows > 0 {
			t.Errorf("n=%d: heart size %d is even", n, rows)
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if mask[r*cols+c] != mask[r*cols+cols-1-c] {
					t.Errorf("n=%d: mask not symmetric at (%d,%d)", n, r, c)
				}
			}
		}
	}
}

func TestComputeValidAreaNegative(t *testing.T) {
	rows, cols, mask := ComputeValidArea(ShapeNormal, -3, 4)
	if rows != 0 || len(mask) != 0 {
		t.Errorf("got %dx%d with %d cells, want empty", rows, cols, len(mask))
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		in      string
		want    Shape
		wantErr bool
	}{
		{"normal", ShapeNormal, false},
		{"", ShapeNormal, false},
		{"heart", ShapeHeart, false},
		{"star", ShapeNormal, true},
	}
	for _, tt := range tests {
		got, err := ParseShape(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseShape(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseShape(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if ShapeHeart.String() != "heart" {
		t.Errorf("ShapeHeart.String() = %q", ShapeHeart.String())
	}
}
