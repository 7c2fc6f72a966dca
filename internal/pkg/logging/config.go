package logging

// Форматы вывода логов.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Уровни логирования.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Куда пишутся логи.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Значения по умолчанию для Config.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "/var/log/api-smoke.log"
	DefaultMaxSize    = 20 // MB
	DefaultMaxBackups = 3
	DefaultMaxAge     = 7 // days
	DefaultCompress   = true
)

// DefaultConfig возвращает Config со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}

// Config содержит настройки логирования прогона.
type Config struct {
	// Format: "json" или "text".
	Format string

	// Level: "debug", "info", "warn" или "error". Неизвестное значение трактуется как "info".
	Level string

	// Output: "stderr" или "file". Stdout занят отчётом, поэтому туда логи не пишутся никогда.
	Output string

	// FilePath используется только при Output == "file".
	FilePath string

	// Параметры ротации lumberjack.
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}
