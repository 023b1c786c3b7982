package sim

import "strings"

// SplitArgs 以空白斷詞，雙引號包住的片段視為單一 token (引號本身移除)。
// 這模擬遊戲主機聊天層對指令參數的斷詞行為。
func SplitArgs(line string) []string {
	var (
		args     []string
		current  strings.Builder
		inQuotes bool
		hasToken bool
	)
	flush := func() {
		if hasToken {
			args = append(args, current.String())
			current.Reset()
			hasToken = false
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			hasToken = true
		case !inQuotes && (r == ' ' || r == '\t'):
			flush()
		default:
			current.WriteRune(r)
			hasToken = true
		}
	}
	flush()
	return args
}
