package log

import (
	"strconv"
	"time"

	"github.com/magabrotheeeer/exercise-tracker/internal/models"
)

// applyFilter применяет к журналу необязательные границы запроса /log.
// Каждая граница действует независимо и только если разбирается как дата:
// from отбрасывает записи раньше нижней границы, limit-дата — позже верхней
// (границы включительны). Значение limit, разбирающееся как целое число,
// усекает результат с начала. Нераспознанные фильтры молча игнорируются.
// Недатированные записи исключаются, как только действует хотя бы одна
// граница по дате.
func applyFilter(entries []models.Exercise, fromStr, limitStr string) []models.Exercise {
	from, fromOK := parseDate(fromStr)
	to, toOK := parseDate(limitStr)

	results := entries
	if fromOK || toOK {
		results = make([]models.Exercise, 0, len(entries))
		for _, e := range entries {
			if e.Date == nil {
				continue
			}
			if fromOK && e.Date.Before(from) {
				continue
			}
			if toOK && e.Date.After(to) {
				continue
			}
			results = append(results, e)
		}
	}

	if n, err := strconv.Atoi(limitStr); err == nil && n >= 0 && len(results) > n {
		results = results[:n]
	}
	return results
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", value)
	return d, err == nil
}
