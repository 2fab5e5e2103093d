package repository

import "errors"

// ErrNotFound возвращается и когда строки нет, и когда она принадлежит
// другому пользователю — различать эти случаи наружу нельзя.
var ErrNotFound = errors.New("задача не найдена")
