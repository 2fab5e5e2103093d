package task

// Option — функция частичного обновления задачи.
// Применяется к уже загруженной строке внутри транзакции хранилища,
// поэтому незатронутые поля остаются как есть.
type Option func(*Task)

func WithTitle(title string) Option {
	return func(t *Task) {
		t.Title = title
	}
}

// WithDescription принимает указатель: nil означает явную очистку описания.
func WithDescription(description *string) Option {
	return func(t *Task) {
		t.Description = description
	}
}
