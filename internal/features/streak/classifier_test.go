package streak

import (
	"testing"
	"time"
)

func at(s string) time.Time {
	t, err := time.ParseInLocation(DefaultLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func testRules() Rules {
	return Rules{MinGap: DefaultMinGap, Sentinel: Sentinel(time.UTC)}
}

func TestDailyClassifier(t *testing.T) {
	c := DailyClassifier{Rules: testRules()}

	tests := []struct {
		name      string
		anchor    string
		candidate string
		want      Transition
	}{
		{"same day", "2021-12-01 08:00:00", "2021-12-01 22:00:00", AlreadyLogged},
		{"next day", "2021-12-01 08:00:00", "2021-12-02 07:00:00", InTime},
		{"next day exactly at gap", "2021-12-01 22:00:00", "2021-12-02 02:00:00", InTime},
		{"across midnight inside gap", "2021-12-01 23:30:00", "2021-12-02 00:30:00", AlreadyLogged},
		{"two days later", "2021-12-01 08:00:00", "2021-12-03 08:00:00", Broken},
		{"month boundary", "2021-11-30 10:00:00", "2021-12-01 10:00:00", InTime},
		{"year boundary", "2021-12-31 12:00:17", "2022-01-01 13:00:17", InTime},
		{"earlier day", "2021-12-05 08:00:00", "2021-12-04 08:00:00", Broken},
		{"sentinel anchor", "1990-04-03 00:00:01", "2021-12-01 08:00:00", Broken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(at(tt.anchor), at(tt.candidate)); got != tt.want {
				t.Errorf("Classify(%s, %s) = %v, want %v", tt.anchor, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestWeeklyClassifier(t *testing.T) {
	c := WeeklyClassifier{Rules: testRules()}

	tests := []struct {
		name      string
		anchor    string
		candidate string
		want      Transition
	}{
		{"same week", "2021-12-13 08:00:00", "2021-12-19 20:00:00", AlreadyLogged},
		{"next week", "2021-12-15 08:00:00", "2021-12-22 08:00:00", InTime},
		{"next week inside gap", "2021-12-19 23:00:00", "2021-12-20 01:00:00", AlreadyLogged},
		{"skipped week", "2021-12-01 08:00:00", "2021-12-15 08:00:00", Broken},
		{"earlier week", "2021-12-15 08:00:00", "2021-12-08 08:00:00", Broken},
		{"52-week year rollover", "2021-12-28 08:11:09", "2022-01-05 08:11:09", InTime},
		{"rollover into week 53 skipped", "2020-12-23 10:00:00", "2021-01-06 10:00:00", Broken},
		{"rollover from week 53", "2020-12-30 10:00:00", "2021-01-05 10:00:00", InTime},
		{"iso year differs from calendar year", "2024-12-23 10:00:00", "2024-12-30 10:00:00", InTime},
		{"week 53 spans new year", "2021-01-01 10:00:00", "2021-01-03 10:00:00", AlreadyLogged},
		{"same week number a year later", "2021-03-10 10:00:00", "2022-03-09 10:00:00", AlreadyLogged},
		{"next year not week one", "2021-12-28 08:00:00", "2022-01-12 08:00:00", Broken},
		{"two years later", "2019-06-01 08:00:00", "2021-06-01 08:00:00", Broken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(at(tt.anchor), at(tt.candidate)); got != tt.want {
				t.Errorf("Classify(%s, %s) = %v, want %v", tt.anchor, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestMonthlyClassifier(t *testing.T) {
	c := MonthlyClassifier{Rules: testRules()}

	tests := []struct {
		name      string
		anchor    string
		candidate string
		want      Transition
	}{
		{"sentinel anchor", "1990-04-03 00:00:01", "2021-11-30 10:11:09", InTime},
		{"same month", "2021-12-07 03:11:09", "2021-12-23 03:11:09", AlreadyLogged},
		{"next month", "2021-11-30 10:11:09", "2021-12-07 03:11:09", InTime},
		{"next month inside gap", "2021-11-30 23:00:00", "2021-12-01 01:00:00", AlreadyLogged},
		{"skipped month", "2022-02-04 03:11:09", "2022-04-10 11:21:45", Broken},
		{"earlier month", "2022-05-28 11:21:45", "2022-03-01 11:21:45", Broken},
		{"december to january", "2021-12-07 03:11:09", "2022-01-22 11:21:45", InTime},
		// на переходе через год защитный интервал не проверяется
		{"december to january inside gap", "2021-12-31 23:00:00", "2022-01-01 00:30:00", InTime},
		{"december to february", "2021-12-07 03:11:09", "2022-02-01 11:21:45", Broken},
		{"two years later", "2019-06-01 08:00:00", "2021-07-01 08:00:00", Broken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(at(tt.anchor), at(tt.candidate)); got != tt.want {
				t.Errorf("Classify(%s, %s) = %v, want %v", tt.anchor, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestNewClassifierRejectsUnknownCadence(t *testing.T) {
	if _, err := NewClassifier(Cadence(42), testRules()); err == nil {
		t.Fatal("expected error for unknown cadence")
	}
}

func TestSamePeriodIsAlwaysAlreadyLogged(t *testing.T) {
	rules := testRules()
	pairs := []struct {
		classifier Classifier
		anchor     string
		candidate  string
	}{
		{DailyClassifier{Rules: rules}, "2022-03-01 00:00:00", "2022-03-01 23:59:59"},
		{WeeklyClassifier{Rules: rules}, "2022-03-07 00:00:00", "2022-03-13 23:59:59"},
		{MonthlyClassifier{Rules: rules}, "2022-03-01 00:00:00", "2022-03-31 23:59:59"},
	}

	for _, p := range pairs {
		if got := p.classifier.Classify(at(p.anchor), at(p.candidate)); got != AlreadyLogged {
			t.Errorf("%T: Classify(%s, %s) = %v, want AlreadyLogged", p.classifier, p.anchor, p.candidate, got)
		}
	}
}

func TestMinGapIsConfigurable(t *testing.T) {
	c := DailyClassifier{Rules: Rules{MinGap: 30 * time.Minute, Sentinel: Sentinel(time.UTC)}}
	if got := c.Classify(at("2021-12-01 23:30:00"), at("2021-12-02 00:30:00")); got != InTime {
		t.Fatalf("with 30m gap got %v, want InTime", got)
	}
}
