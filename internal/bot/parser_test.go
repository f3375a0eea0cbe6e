package bot

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	tests := []struct {
		text      string
		wantCmd   string
		wantArgs  []string
		isCommand bool
	}{
		{"/start", "start", nil, true},
		{"!серия 3", "серия", []string{"3"}, true},
		{".Привычки", "привычки", nil, true},
		{"/streak@habit_bot 5 max", "streak", []string{"5", "max"}, true},
		{"  /new  daily Бег | утром  ", "new", []string{"daily", "Бег", "|", "утром"}, true},
		{"просто текст", "", nil, false},
		{"/", "", nil, false},
		{"/@habit_bot", "", nil, false},
		{"", "", nil, false},
	}

	for _, tt := range tests {
		cmd, args, ok := p.ParseCommand(tt.text)
		if ok != tt.isCommand || cmd != tt.wantCmd || !reflect.DeepEqual(args, tt.wantArgs) {
			t.Errorf("ParseCommand(%q) = (%q, %v, %v), want (%q, %v, %v)",
				tt.text, cmd, args, ok, tt.wantCmd, tt.wantArgs, tt.isCommand)
		}
	}
}
