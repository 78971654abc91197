package highlight

import "testing"

func TestAnnotateAddresses(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no addresses",
			in:   "annotation: queue drained",
			want: "annotation: queue drained",
		},
		{
			name: "single address",
			in:   "Read 0x7f3a20 = 0x0",
			want: "Read «0x7f3a20» = «0x0»",
		},
		{
			name: "many addresses",
			in:   "CAS fail 0xdead from 0x1 to 0x2; was 0x3",
			want: "CAS fail «0xdead» from «0x1» to «0x2»; was «0x3»",
		},
		{
			name: "bare 0x prefix",
			in:   "value 0x",
			want: "value «0x»",
		},
		{
			name: "surrounding text preserved",
			in:   "Write *0xabc123 = 0x64 (4 bytes)",
			want: "Write *«0xabc123» = «0x64» (4 bytes)",
		},
		{
			name: "uppercase prefix not matched",
			in:   "addr 0XFF",
			want: "addr 0XFF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnnotateAddresses(tt.in); got != tt.want {
				t.Errorf("AnnotateAddresses(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAnnotateAddressesIdempotent(t *testing.T) {
	inputs := []string{
		"Read 0x7f3a20 = 0x0",
		"CAS 0x1 from 0x2 to 0x3",
		"no addresses here",
	}

	for _, in := range inputs {
		once := AnnotateAddresses(in)
		twice := AnnotateAddresses(once)
		if once != twice {
			t.Errorf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
