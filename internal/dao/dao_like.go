package dao

import "strings"

// likeEscape is the ESCAPE character used by keyword searches, accepted by SQLite, MySQL and PostgreSQL
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// containsPattern builds a LIKE pattern matching keyword as a literal substring
// containsPattern 构造字面子串匹配的 LIKE 模式，keyword 中的通配符会被转义
func containsPattern(keyword string) string {
	return "%" + likeReplacer.Replace(keyword) + "%"
}
