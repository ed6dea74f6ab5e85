package filter

import "testing"

func TestComponentTransferIdentities(t *testing.T) {
	in := gradientSurface(32, 32)
	want := in.Copy()

	tests := []struct {
		name string
		f    TransferFunc
	}{
		{"zero value", TransferFunc{}},
		{"linear", Linear(1, 0)},
		{"table", Table(0, 1)},
		{"gamma", Gamma(1, 1, 0)},
		{"empty table", Table()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ComponentTransfer{R: tt.f, G: tt.f, B: tt.f, A: tt.f}
			sameWords(t, run(t, p, in.Copy()), want)
		})
	}
}

func TestTransferLUT(t *testing.T) {
	tests := []struct {
		name string
		f    TransferFunc
		in   []int
		want []uint8
	}{
		{"invert table", Table(1, 0), []int{0, 255, 51}, []uint8{255, 0, 204}},
		{"discrete", Discrete(0, 1), []int{0, 127, 128, 255}, []uint8{0, 0, 255, 255}},
		{"single entry table", Table(0.5), []int{0, 255}, []uint8{128, 128}},
		{"linear clamps", Linear(2, 0.5), []int{0, 255}, []uint8{128, 255}},
		{"negative intercept", Linear(1, -1), []int{0, 255}, []uint8{0, 0}},
		{"gamma offset", Gamma(0, 1, 0.2), []int{0, 200}, []uint8{51, 51}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lut := tt.f.lut()
			for i, c := range tt.in {
				if got := lut[c]; got != tt.want[i] {
					t.Errorf("f(%d) = %d, want %d", c, got, tt.want[i])
				}
			}
		})
	}
}

func TestComponentTransferAlphaZeroesPixel(t *testing.T) {
	k := ComponentTransferKernel(TransferFunc{}, TransferFunc{}, TransferFunc{}, Linear(0, 0))
	if got := k(0xff804020); got != 0 {
		t.Errorf("got %#08x, want transparent", got)
	}
}
