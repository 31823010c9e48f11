package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

// FileName is config file name looked up in user config directory
const FileName = "config.yaml"

// Examples are shown in help output
const Examples = `翻译工具 (trs)

参数:
  text  要翻译的文本，可以是一个单词或一个句子，带引号或不带引号

示例:
  trs what is your position
  trs "what is your position"
  trs what
  trs -c
  trs -s
  trs -c hello world
  trs -s hello world
  trs -x -c`

// Opts are command line options
type Opts struct {
	Copy          bool   `short:"c" long:"copy" description:"若当前有待翻译文本输入，则将当前文本翻译的结果拷贝到剪切板，否则将上一次翻译的结果拷贝到剪切板"`
	Save          bool   `short:"s" long:"save" description:"若当前有待翻译文本输入，则将当前文本翻译的结果保存到本地，否则将上一次翻译的结果保存到本地"`
	Voice         bool   `short:"v" long:"voice" description:"阅读当前文本"`
	TranslateClip bool   `short:"x" long:"translate-clip" description:"直接翻译剪切板"`
	Output        string `long:"output" description:"保存路径，不再询问"`

	APIKey     string `long:"api-key" env:"DASHSCOPE_API_KEY" description:"DashScope API 密钥"`
	BaseURL    string `long:"base-url" env:"DASHSCOPE_BASE_URL" default:"https://dashscope.aliyuncs.com/compatible-mode/v1" description:"OpenAI 兼容的翻译接口地址"`
	Model      string `long:"model" default:"qwen-mt-turbo" description:"翻译模型"`
	SourceLang string `long:"source-lang" default:"auto" description:"源语言"`
	TargetLang string `long:"target-lang" default:"Chinese" description:"目标语言"`
	Translator string `long:"translator" choice:"dashscope" choice:"mymemory" default:"dashscope" description:"句子翻译服务"`
	MyMemory   string `long:"mymemory-token" env:"MYMEMORY_TOKEN" description:"MyMemory API 密钥"`

	Mode          string   `long:"mode" choice:"meta" choice:"spans" default:"meta" description:"词典页面解析方式"`
	POS           []string `long:"pos" description:"额外的词性标记，可重复"`
	MergeRepeated bool     `long:"merge-repeated" description:"合并重复词性的释义而不是覆盖"`

	Cache    string `long:"cache" choice:"file" choice:"bolt" choice:"redis" choice:"memory" default:"file" description:"翻译缓存"`
	BoltDB   string `long:"boltdb" env:"BOLTDB" description:"BoltDB 路径，默认位于用户缓存目录"`
	RedisURL string `long:"redis" env:"REDIS_URL" description:"Redis 数据库地址"`

	TTSKey    string `long:"tts-key" env:"OPENAI_API_KEY" description:"语音合成 API 密钥"`
	TTSURL    string `long:"tts-url" default:"https://api.openai.com/v1" description:"OpenAI 兼容的语音合成接口地址"`
	TTSModel  string `long:"tts-model" default:"tts-1" description:"语音合成模型"`
	VoiceName string `long:"voice-name" default:"alloy" description:"朗读音色"`
	Player    string `long:"player" env:"TRS_PLAYER" description:"音频播放命令，为空时自动检测"`

	Timeout  time.Duration `long:"timeout" default:"30s" description:"网络超时"`
	LogLevel string        `long:"log-level" env:"LOG_LEVEL" default:"warn" description:"日志级别"`
	Config   string        `long:"config" env:"TRS_CONFIG" description:"YAML 配置文件"`

	Serve bool `long:"serve" description:"启动 HTTP 接口而不是翻译"`
	Port  int  `long:"port" env:"PORT" default:"8080" description:"监听端口"`
}

// File is YAML config file, unset fields keep command line values
type File struct {
	APIKey        *string        `yaml:"api_key"`
	BaseURL       *string        `yaml:"base_url"`
	Model         *string        `yaml:"model"`
	SourceLang    *string        `yaml:"source_lang"`
	TargetLang    *string        `yaml:"target_lang"`
	Translator    *string        `yaml:"translator"`
	MyMemory      *string        `yaml:"mymemory_token"`
	Mode          *string        `yaml:"mode"`
	POS           []string       `yaml:"pos"`
	MergeRepeated *bool          `yaml:"merge_repeated"`
	Cache         *string        `yaml:"cache"`
	BoltDB        *string        `yaml:"boltdb"`
	RedisURL      *string        `yaml:"redis"`
	TTSKey        *string        `yaml:"tts_key"`
	TTSURL        *string        `yaml:"tts_url"`
	TTSModel      *string        `yaml:"tts_model"`
	VoiceName     *string        `yaml:"voice_name"`
	Player        *string        `yaml:"player"`
	Output        *string        `yaml:"output"`
	Timeout       *time.Duration `yaml:"timeout"`
	LogLevel      *string        `yaml:"log_level"`
	Port          *int           `yaml:"port"`
}

// LoadFile reads config file. Missing file is not an error when required is false.
func LoadFile(path string, required bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &f, nil
}

// DefaultPath returns config path in user config directory
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "trs", FileName)
}

// Apply copies file values into opts for options not given explicitly
func (f *File) Apply(opts *Opts, explicit func(long string) bool) error {
	if f == nil {
		return nil
	}
	str := func(long string, dst *string, v *string) {
		if v != nil && !explicit(long) {
			*dst = *v
		}
	}
	str("api-key", &opts.APIKey, f.APIKey)
	str("base-url", &opts.BaseURL, f.BaseURL)
	str("model", &opts.Model, f.Model)
	str("source-lang", &opts.SourceLang, f.SourceLang)
	str("target-lang", &opts.TargetLang, f.TargetLang)
	str("translator", &opts.Translator, f.Translator)
	str("mymemory-token", &opts.MyMemory, f.MyMemory)
	str("mode", &opts.Mode, f.Mode)
	str("cache", &opts.Cache, f.Cache)
	str("boltdb", &opts.BoltDB, f.BoltDB)
	str("redis", &opts.RedisURL, f.RedisURL)
	str("tts-key", &opts.TTSKey, f.TTSKey)
	str("tts-url", &opts.TTSURL, f.TTSURL)
	str("tts-model", &opts.TTSModel, f.TTSModel)
	str("voice-name", &opts.VoiceName, f.VoiceName)
	str("player", &opts.Player, f.Player)
	str("output", &opts.Output, f.Output)
	str("log-level", &opts.LogLevel, f.LogLevel)
	if len(f.POS) > 0 && !explicit("pos") {
		opts.POS = f.POS
	}
	if f.MergeRepeated != nil && !explicit("merge-repeated") {
		opts.MergeRepeated = *f.MergeRepeated
	}
	if f.Timeout != nil && !explicit("timeout") {
		opts.Timeout = *f.Timeout
	}
	if f.Port != nil && !explicit("port") {
		opts.Port = *f.Port
	}
	return opts.Validate()
}

// Validate checks values that can come from config file bypassing flag choices
func (o Opts) Validate() error {
	check := func(name, value string, choices ...string) error {
		for _, c := range choices {
			if value == c {
				return nil
			}
		}
		return fmt.Errorf("invalid %s %q, allowed: %v", name, value, choices)
	}
	if err := check("translator", o.Translator, "dashscope", "mymemory"); err != nil {
		return err
	}
	if err := check("mode", o.Mode, "meta", "spans"); err != nil {
		return err
	}
	return check("cache", o.Cache, "file", "bolt", "redis", "memory")
}

func newParser(opts *Opts) *flags.Parser {
	parser := flags.NewParser(opts, flags.Default)
	parser.Name = "trs"
	parser.Usage = "[-h] [-c] [-s] [-v] [-x] [text ...]"
	parser.ShortDescription = "trs翻译工具"
	parser.LongDescription = Examples
	return parser
}

// Parse parses command line and config file.
// Precedence is: flag, config file, environment, default.
func Parse(args []string) (Opts, []string, error) {
	var opts Opts
	parser := newParser(&opts)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return opts, nil, err
	}
	path, required := opts.Config, true
	if path == "" {
		path, required = DefaultPath(), false
	}
	if path == "" {
		return opts, rest, nil
	}
	f, err := LoadFile(path, required)
	if err != nil {
		return opts, nil, err
	}
	explicit := func(long string) bool {
		o := parser.FindOptionByLongName(long)
		return o != nil && o.IsSet() && !o.IsSetDefault()
	}
	if err := f.Apply(&opts, explicit); err != nil {
		return opts, nil, err
	}
	return opts, rest, nil
}
