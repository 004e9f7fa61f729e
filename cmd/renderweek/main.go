// Утилита для локальной проверки отрисовки недельного расписания:
// генерирует картинку с тестовыми слотами и сохраняет её в файл.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/accordo-app/accordo/internal/render"
	"github.com/accordo-app/accordo/internal/schedule"
)

func main() {
	now := time.Now()
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for weekStart.Weekday() != time.Monday {
		weekStart = weekStart.AddDate(0, 0, -1)
	}

	day := func(offset int) string {
		return schedule.FormatDate(weekStart.AddDate(0, 0, offset))
	}
	at := func(s string) schedule.TimeOfDay {
		tod, err := schedule.ParseTimeOfDay(s)
		if err != nil {
			panic(err)
		}
		return tod
	}

	free := []schedule.TimeRange{
		{Date: day(0), Start: at("09:00"), End: at("10:00")},
		{Date: day(1), Start: at("10:00"), End: at("11:00")},
		{Date: day(2), Start: at("15:00"), End: at("16:30")},
		{Date: day(4), Start: at("09:00"), End: at("12:00")},
		{Date: day(5), Start: at("11:00"), End: at("11:45")},
	}
	booked := []schedule.TimeRange{
		{Date: day(0), Start: at("14:00"), End: at("15:00")},
		{Date: day(2), Start: at("09:00"), End: at("10:00")},
		{Date: day(3), Start: at("18:00"), End: at("19:30")},
	}

	png, err := render.WeekPNG(weekStart, free, booked)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render week image: %v\n", err)
		os.Exit(1)
	}

	outPath := "week_schedule.png"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, png, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Image saved to %s (%d bytes)\n", outPath, len(png))
}
