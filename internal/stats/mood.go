package stats

// Mood 描述一个情绪评分对应的展示信息
// Rating 固定取值 1-4，域外评分统一退化为 Unknown，不报错
type Mood struct {
	Rating int
	Label  string
	Color  string
	Icon   string
}

// Unknown 是域外/缺失评分的占位情绪：中性底色，无图标。
var Unknown = Mood{Rating: 0, Label: "未知", Color: "#F3F4F6", Icon: ""}

var moods = []Mood{
	{Rating: 1, Label: "喜悦", Color: "#FEF7CD", Icon: "smile"},
	{Rating: 2, Label: "悲伤", Color: "#D3E4FD", Icon: "frown"},
	{Rating: 3, Label: "愤怒", Color: "#FEC6A1", Icon: "angry"},
	{Rating: 4, Label: "忧郁", Color: "#E5DEFF", Icon: "meh"},
}

// MoodFor 返回评分对应的情绪，域外值返回 Unknown。
func MoodFor(rating int) Mood {
	for _, m := range moods {
		if m.Rating == rating {
			return m
		}
	}
	return Unknown
}

// MoodOf 与 MoodFor 相同，但接受可空评分。
func MoodOf(rating *int) Mood {
	if rating == nil {
		return Unknown
	}
	return MoodFor(*rating)
}

// Moods 返回全部已定义情绪，顺序即评分 1-4，用于筛选与表单渲染。
func Moods() []Mood {
	out := make([]Mood, len(moods))
	copy(out, moods)
	return out
}
