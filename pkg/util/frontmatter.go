// Package util provides common utility functions
// Package util 提供通用工具函数
package util

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseFrontmatter extracts YAML frontmatter from content
// Returns the parsed YAML as a map, the body (content after frontmatter), and whether frontmatter exists
func ParseFrontmatter(content string) (yamlData map[string]interface{}, body string, hasFrontmatter bool) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, frontmatterDelimiter+"\n") {
		return nil, content, false
	}

	rest := content[len(frontmatterDelimiter)+1:]
	endIndex := strings.Index(rest, "\n"+frontmatterDelimiter)
	if endIndex == -1 {
		return nil, content, false
	}

	yamlContent := rest[:endIndex]
	body = strings.TrimPrefix(rest[endIndex+len("\n"+frontmatterDelimiter):], "\n")

	yamlData = make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(yamlContent), &yamlData); err != nil {
		// Broken YAML is treated as plain content
		return nil, content, false
	}

	return yamlData, body, true
}
