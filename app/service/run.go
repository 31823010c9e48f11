package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rbhz/trs/app/cache"
	log "github.com/rs/zerolog/log"
)

// DefaultSavePath is used when save path prompt is left empty
const DefaultSavePath = "./translation.txt"

const (
	msgCopied       = "已将上一次翻译的结果拷贝到剪切板"
	msgSaved        = "已将上一次翻译的结果存储到本地"
	msgSavePrompt   = "请您选择保存路径(默认./translation.txt):"
	msgNoInput      = "请输入要翻译的内容"
	msgNoHistory    = "没有历史翻译"
	msgMissingKey   = "请先配置好DASHSCOPE_API_KEY"
	msgInvalidPath  = "请输入正确路径"
	msgVoiceFailure = "发生错误: "
)

// Request is a single command line invocation
type Request struct {
	Text          []string
	Copy          bool
	Save          bool
	Voice         bool
	TranslateClip bool
	// Output skips save path prompt
	Output string
}

// Console handles user messages and prompts
type Console struct {
	Out io.Writer
	In  io.Reader
}

// Run executes request. Conditions the user can fix are reported to Console and are not errors.
func (s *Service) Run(ctx context.Context, req Request, console Console) error {
	err := s.run(ctx, req, console)
	switch {
	case errors.Is(err, cache.ErrNotFound):
		console.println(msgNoHistory)
	case errors.Is(err, ErrMissingAPIKey):
		console.println(msgMissingKey)
	case errors.Is(err, ErrNoInput):
		console.println(msgNoInput)
	default:
		return err
	}
	return nil
}

func (s *Service) run(ctx context.Context, req Request, console Console) error {
	if len(req.Text) == 0 {
		if !req.TranslateClip && !req.Copy && !req.Save {
			return ErrNoInput
		}
		if req.TranslateClip {
			content, _, err := s.TranslateClipboard(ctx)
			if err != nil {
				return err
			}
			if req.Voice {
				s.speak(ctx, content, console)
			}
		}
		return s.handleLast(req, console)
	}

	content := strings.Join(req.Text, " ")
	var err error
	if len(req.Text) == 1 && IsSingleWord(req.Text[0]) {
		content = req.Text[0]
		_, err = s.ProcessWord(ctx, content)
	} else {
		_, err = s.ProcessSentence(ctx, content)
	}
	if err != nil {
		return err
	}
	if err := s.handleLast(req, console); err != nil {
		return err
	}
	if req.Voice {
		s.speak(ctx, content, console)
	}
	return nil
}

func (s *Service) handleLast(req Request, console Console) error {
	if req.Copy {
		if err := s.CopyLast(); err != nil {
			return err
		}
		console.println(msgCopied)
	}
	if req.Save {
		path, err := console.savePath(req.Output)
		if err != nil {
			return err
		}
		if err := s.SaveLast(path); err != nil {
			if errors.Is(err, cache.ErrNotFound) {
				return err
			}
			log.Debug().Err(err).Str("path", path).Msg("failed to save translation")
			console.println(msgInvalidPath)
			return nil
		}
		console.println(msgSaved)
	}
	return nil
}

func (s *Service) speak(ctx context.Context, text string, console Console) {
	if err := s.Speak(ctx, text); err != nil {
		log.Error().Err(err).Msg("failed to read text aloud")
		console.println(msgVoiceFailure + err.Error())
	}
}

func (c Console) println(msg string) {
	if c.Out == nil {
		return
	}
	fmt.Fprintln(c.Out, msg)
}

// savePath asks for path unless output is given
func (c Console) savePath(output string) (string, error) {
	if output != "" {
		return output, nil
	}
	if c.Out != nil {
		fmt.Fprint(c.Out, msgSavePrompt)
	}
	if c.In == nil {
		return DefaultSavePath, nil
	}
	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "failed to read save path")
	}
	if path := strings.TrimSpace(line); path != "" {
		return path, nil
	}
	return DefaultSavePath, nil
}
