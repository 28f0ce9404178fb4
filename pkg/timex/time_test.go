package timex

import (
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// Create a fixed time
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	// Test Unix()
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}

	// Test UnixMilli()
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}

	// Test UnixMicro()
	if tt.UnixMicro() != now.UnixMicro() {
		t.Errorf("UnixMicro() = %v, want %v", tt.UnixMicro(), now.UnixMicro())
	}

	// Test UnixNano()
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}

	// Verify it's not returning time.Now() by waiting a bit
	// 通过等待一会确认它不是返回 time.Now()
	time.Sleep(10 * time.Millisecond)
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() changed after sleep, it should be static. got %v, want %v", tt.Unix(), now.Unix())
	}
}

func TestTime_Scan(t *testing.T) {
	want := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

	cases := []struct {
		name string
		in   interface{}
	}{
		{"time", want},
		{"string", "2024-01-01 12:00:00"},
		{"bytes", []byte("2024-01-01 12:00:00")},
		{"rfc3339", want.Format(time.RFC3339Nano)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var tt Time
			if err := tt.Scan(c.in); err != nil {
				t.Fatalf("Scan(%v) error: %v", c.in, err)
			}
			if tt.UnixMilli() != want.UnixMilli() {
				t.Errorf("Scan(%v) = %v, want %v", c.in, tt.Std(), want)
			}
		})
	}

	var zero Time
	if err := zero.Scan(nil); err != nil || !zero.IsZero() {
		t.Errorf("Scan(nil) = %v, %v; want zero time", zero.Std(), err)
	}
	if err := zero.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestTime_Value(t *testing.T) {
	var zero Time
	if v, err := zero.Value(); err != nil || v != nil {
		t.Errorf("zero Value() = %v, %v; want nil", v, err)
	}

	now := time.Now()
	v, err := Time(now).Value()
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := v.(time.Time); !ok || !got.Equal(now) {
		t.Errorf("Value() = %v, want %v", v, now)
	}
}
