// Package render рисует недельное расписание учителя одной PNG-картинкой.
package render

import (
	"bytes"
	"image/color"
	"strconv"
	"time"

	"github.com/accordo-app/accordo/internal/schedule"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Размеры и отступы
const (
	imageWidth      = 1400
	imageHeight     = 900
	headerHeight    = 100
	leftLabelsWidth = 80
	legendWidth     = 120
	dayPaddingX     = 8
	minSlotHeight   = 8.0
	slotRadius      = 6.0
	daysInWeek      = 7
	hourPadding     = 2
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	freeColor       = color.RGBA{133, 193, 85, 220}
	bookedColor     = color.RGBA{255, 182, 193, 255}
	freeTextColor   = color.RGBA{20, 24, 28, 230}
	bookedTextColor = color.RGBA{120, 40, 50, 255}

	legendTextColor = color.RGBA{70, 74, 78, 220}
)

type interval struct {
	start  schedule.TimeOfDay
	end    schedule.TimeOfDay
	booked bool
}

type hourRange struct {
	start int
	end   int
	total int
}

// WeekPNG рисует неделю начиная с weekStart (понедельник): свободные слоты
// зелёным, занятые уроками интервалы розовым
func WeekPNG(weekStart time.Time, free, booked []schedule.TimeRange) ([]byte, error) {
	byDay := groupByDay(free, booked)
	hours := visibleHours(free, booked)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / daysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, weekStart)
	drawHourLabels(dc, hours, cellHeight)

	day := weekStart
	for i := 0; i < daysInWeek; i++ {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i)
		drawDayHeader(dc, day, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)

		for _, iv := range byDay[schedule.FormatDate(day)] {
			drawInterval(dc, iv, x, y, dayWidth, hours, cellHeight)
		}

		day = day.AddDate(0, 0, 1)
	}

	drawLegend(dc, dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func groupByDay(free, booked []schedule.TimeRange) map[string][]interval {
	byDay := make(map[string][]interval)
	for _, r := range free {
		byDay[r.Date] = append(byDay[r.Date], interval{start: r.Start, end: r.End})
	}
	for _, r := range booked {
		byDay[r.Date] = append(byDay[r.Date], interval{start: r.Start, end: r.End, booked: true})
	}
	return byDay
}

// visibleHours подбирает диапазон часов так, чтобы все интервалы попали
// в картинку с небольшим запасом сверху и снизу
func visibleHours(free, booked []schedule.TimeRange) hourRange {
	minHour := 24
	maxHour := 0

	consider := func(r schedule.TimeRange) {
		startH := r.Start.Hour()
		endH := r.End.Hour()
		if r.End.Minute() > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}
	for _, r := range free {
		consider(r)
	}
	for _, r := range booked {
		consider(r)
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	start := minHour - hourPadding
	end := maxHour + hourPadding
	if start < 0 {
		start = 0
	}
	if end > 23 {
		end = 23
	}

	return hourRange{start: start, end: end, total: end - start + 1}
}

func drawHeader(dc *gg.Context, weekStart time.Time) {
	weekEnd := weekStart.AddDate(0, 0, 6)

	title := weekStart.Month().String()
	if weekEnd.Month() != weekStart.Month() {
		title += " - " + weekEnd.Month().String()
	}

	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2+20, float64(headerHeight)/8+h/2, 0, 0)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for i := 0; i < hours.total; i++ {
		y := float64(headerHeight) + float64(i)*cellHeight
		dc.DrawStringAnchored(hourLabel(hours.start+i), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int) {
	if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, day time.Time, x, y float64, dayWidth int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(day.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1.6)
	dc.DrawStringAnchored(day.Weekday().String()[:3], x+float64(dayWidth)/2, y, 0.5, -0.4)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for i := 0; i <= hours.total; i++ {
		hy := y + float64(i)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawInterval(dc *gg.Context, iv interval, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(iv.start) / 60.0
	endHour := float64(iv.end) / 60.0

	top := y + (startHour-float64(hours.start))*cellHeight
	height := (endHour - startHour) * cellHeight
	if height < minSlotHeight {
		height = minSlotHeight
	}

	fill := freeColor
	label := freeTextColor
	if iv.booked {
		fill = bookedColor
		label = bookedTextColor
	}
	width := float64(dayWidth) - float64(dayPaddingX*2)

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), top+2, width, height-4, slotRadius)
	dc.Fill()

	dc.SetColor(darken(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), top+2, width, height-4, slotRadius)
	dc.Stroke()

	dc.SetColor(label)
	dc.DrawStringAnchored(iv.start.String(), x+float64(dayPaddingX)+8, top+16, 0, 0)
}

func drawLegend(dc *gg.Context, dayWidth int) {
	legendX := float64(leftLabelsWidth + daysInWeek*dayWidth + 10)
	legendY := float64(imageHeight) - 80.0

	items := []struct {
		label string
		clr   color.Color
	}{
		{"Free", freeColor},
		{"Booked", bookedColor},
	}

	boxW, boxH := 20.0, 14.0
	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(legendX, legendY, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendTextColor)
		dc.DrawStringAnchored(item.label, legendX+boxW+8, legendY+boxH/2+1, 0, 0.2)
		legendY += boxH + 14
	}
}

func darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func hourLabel(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h) + ":00"
	}
	return strconv.Itoa(h) + ":00"
}
