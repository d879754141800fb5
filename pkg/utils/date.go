package utils

import "time"

// KST é o fuso fixo de Seul (UTC+9, sem horário de verão). Todos os
// cálculos de data da coleta acontecem nesse fuso.
var KST = time.FixedZone("Asia/Seoul", 9*60*60)

func NowKST() time.Time {
	return time.Now().In(KST)
}

// FormatYMD formata a data no padrão das planilhas (YYYY-MM-DD, KST).
func FormatYMD(t time.Time) string {
	return t.In(KST).Format(time.DateOnly)
}

// KSTDayRange retorna o intervalo 00:00:00.000 ~ 23:59:59.999 do dia em KST.
func KSTDayRange(t time.Time) (time.Time, time.Time) {
	local := t.In(KST)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, KST)
	end := time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, 999000000, KST)

	return start, end
}

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.ParseInLocation(time.DateOnly, dateStr, KST)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}
