package stats

import (
	"time"

	"github.com/aidiary/internal/db"
)

// CompletionBucket 是日程完成图的单根柱：某一天完成/未完成的数量。
type CompletionBucket struct {
	Day        string `json:"day"`
	Completed  int    `json:"completed"`
	Incomplete int    `json:"incomplete"`
}

// EmotionBucket 是情绪分布图的单根柱：某种情绪在当月出现的次数。
type EmotionBucket struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
	Color   string `json:"color"`
}

// CompletionByDay 将日程按月过滤后按日期分桶，统计完成与未完成数量。
// 分桶顺序跟随输入中键首次出现的顺序；日期无法解析的记录被跳过。
// 过滤后的每条记录恰好落入一个桶，空输入产出空序列。
func CompletionByDay(events []db.CalendarEvent, month Month) []CompletionBucket {
	buckets := make([]CompletionBucket, 0)
	index := make(map[string]int)

	for _, event := range events {
		t, err := time.Parse("2006-01-02", event.Date)
		if err != nil || !month.Contains(t) {
			continue
		}

		day := t.Format("01/02")
		i, ok := index[day]
		if !ok {
			i = len(buckets)
			index[day] = i
			buckets = append(buckets, CompletionBucket{Day: day})
		}

		if event.Completed {
			buckets[i].Completed++
		} else {
			buckets[i].Incomplete++
		}
	}

	return buckets
}

// EmotionCounts 将日记按月过滤后按情绪分桶计数。
// 未评分的日记不参与统计；域外评分归入未知情绪。
func EmotionCounts(entries []db.DiaryEntry, month Month) []EmotionBucket {
	buckets := make([]EmotionBucket, 0)
	index := make(map[string]int)

	for _, entry := range entries {
		if entry.Rating == nil || !month.Contains(entry.CreatedAt) {
			continue
		}

		mood := MoodFor(*entry.Rating)
		i, ok := index[mood.Label]
		if !ok {
			i = len(buckets)
			index[mood.Label] = i
			buckets = append(buckets, EmotionBucket{Emotion: mood.Label, Color: mood.Color})
		}
		buckets[i].Count++
	}

	return buckets
}
