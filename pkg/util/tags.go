package util

import (
	"fmt"
	"regexp"
	"strings"
)

// tagLineRegex matches h6 "###### tags: `a` `b`" lines only
var tagLineRegex = regexp.MustCompile(`(?im)^[ \t]{0,3}#{6}[ \t]*tags[ \t]*:(.*)$`)

// backtickRegex matches `tag` spans on a tag line
var backtickRegex = regexp.MustCompile("`([^`]+)`")

// ParseNoteTags extracts the tags of a note
// ParseNoteTags 解析笔记标签
// A frontmatter tags key (a YAML list or a comma separated string) wins,
// h6 tag lines are read only when it is absent. Result is trimmed, de-duplicated and keeps order.
func ParseNoteTags(content string) []string {
	tags := make([]string, 0)
	seen := make(map[string]bool)
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	meta, body, ok := ParseFrontmatter(content)
	if ok && meta["tags"] != nil {
		switch v := meta["tags"].(type) {
		case string:
			for _, t := range strings.Split(v, ",") {
				add(t)
			}
		case []interface{}:
			for _, t := range v {
				if t != nil {
					add(fmt.Sprint(t))
				}
			}
		default:
			add(fmt.Sprint(v))
		}
		return tags
	}

	for _, line := range tagLineRegex.FindAllStringSubmatch(body, -1) {
		for _, m := range backtickRegex.FindAllStringSubmatch(line[1], -1) {
			add(m[1])
		}
	}

	return tags
}
