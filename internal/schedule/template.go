package schedule

import "time"

// Span интервал времени без привязки к дате, элемент недельного шаблона
type Span struct {
	Start TimeOfDay `json:"start_time"`
	End   TimeOfDay `json:"end_time"`
}

// WeeklyTemplate недельный шаблон: набор интервалов на каждый день недели
type WeeklyTemplate map[time.Weekday][]Span

// DateWindow отрезок дат, обе границы включительно
type DateWindow struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// ExpandWeeklyTemplate разворачивает недельный шаблон в интервалы с датами.
// Для каждой даты окна, чей день недели входит в allowed, создаётся по одному
// интервалу на каждый Span этого дня недели. Вторым значением возвращаются
// все подошедшие даты, в том числе без единого интервала: применение шаблона
// очищает такие даты, а даты вне allowed не трогает вовсе.
func ExpandWeeklyTemplate(tpl WeeklyTemplate, window DateWindow, allowed map[time.Weekday]bool) ([]TimeRange, []string, error) {
	dates, err := DatesInWindow(window.Start, window.End)
	if err != nil {
		return nil, nil, err
	}

	var ranges []TimeRange
	var produced []string

	for _, date := range dates {
		weekday, err := Weekday(date)
		if err != nil {
			return nil, nil, err
		}

		if !allowed[weekday] {
			continue
		}

		produced = append(produced, date)
		for _, span := range tpl[weekday] {
			ranges = append(ranges, TimeRange{
				Date:  date,
				Start: span.Start,
				End:   span.End,
			})
		}
	}

	return ranges, produced, nil
}

// CopyWeekday копирует интервалы одного дня недели в другие дни шаблона.
// Списки целевых дней перезаписываются, а не дополняются. Возвращается новый
// шаблон, исходный не меняется.
func CopyWeekday(tpl WeeklyTemplate, from time.Weekday, to []time.Weekday) WeeklyTemplate {
	result := make(WeeklyTemplate, len(tpl))
	for weekday, spans := range tpl {
		copied := make([]Span, len(spans))
		copy(copied, spans)
		result[weekday] = copied
	}

	source := result[from]
	for _, target := range to {
		if target == from {
			continue
		}
		copied := make([]Span, len(source))
		copy(copied, source)
		result[target] = copied
	}

	return result
}
