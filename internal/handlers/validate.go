package handlers

import (
	"todoApi/internal/models/task"
	"unicode/utf8"
)

// длины считаем в рунах, не в байтах

func validTitle(title string) bool {
	n := utf8.RuneCountInString(title)
	return n >= 1 && n <= task.TitleMaxLen
}

func validDescription(description *string) bool {
	if description == nil {
		return true
	}
	return utf8.RuneCountInString(*description) <= task.DescriptionMaxLen
}
