package generator

// Config describes the command. It travels in the command context.
type Config struct {
	Use     string
	Short   string
	Long    string
	Version string

	DefaultDir string
}
