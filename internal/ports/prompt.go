package ports

type PromptPort interface {
	Confirm(message string) (bool, error)
}
