package generator

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"

	"product_copy_studio/catalog"
)

// OpenAI generates copy with streamed chat completions, one completion per
// (language, section), in the same order the simulator uses.
type OpenAI struct {
	Model string
	Opts  []option.RequestOption
}

func NewOpenAIFromSettings(cfg *Settings) (*OpenAI, error) {
	if cfg == nil {
		return nil, errors.New("generator settings are nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide generator.api_key or OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("generator model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{Model: cfg.Model, Opts: opts}, nil
}

type job struct {
	language string
	section  Section
}

func (o *OpenAI) Generate(ctx context.Context, req Request) (Stream, error) {
	langs := req.Languages()
	if len(langs) == 0 {
		return nil, ErrNoLanguages
	}
	var jobs []job
	for _, code := range langs {
		if !catalog.Supported(code) {
			return nil, &LookupError{Code: code}
		}
		for _, sec := range sections {
			if req.Covers(sec) {
				jobs = append(jobs, job{language: code, section: sec})
			}
		}
	}
	return &openAIStream{
		ctx:    ctx,
		client: openai.NewClient(o.Opts...),
		model:  o.Model,
		req:    req,
		jobs:   jobs,
	}, nil
}

type openAIStream struct {
	ctx    context.Context
	client openai.Client
	model  string
	req    Request
	jobs   []job

	idx  int
	sub  *ssestream.Stream[openai.ChatCompletionChunk]
	acc  strings.Builder
	cur  StreamEvent
	err  error
	done bool
}

func (s *openAIStream) Next() bool {
	if s.done {
		return false
	}
	for s.idx < len(s.jobs) {
		j := s.jobs[s.idx]
		if s.sub == nil {
			s.acc.Reset()
			s.sub = s.client.Chat.Completions.NewStreaming(s.ctx, s.params(j))
		}
		for s.sub.Next() {
			chunk := s.sub.Current()
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			s.acc.WriteString(chunk.Choices[0].Delta.Content)
			text := strings.TrimSpace(s.acc.String())
			if text == "" {
				continue
			}
			s.cur = StreamEvent{Section: j.section, Content: text, Language: j.language}
			return true
		}
		err := s.sub.Err()
		_ = s.sub.Close()
		s.sub = nil
		if err != nil {
			return s.fail(&GenerationError{Language: j.language, Section: j.section, Err: err})
		}
		text, err := PostProcess(s.acc.String())
		if err != nil {
			return s.fail(&GenerationError{Language: j.language, Section: j.section, Err: err})
		}
		s.cur = StreamEvent{Section: j.section, Content: text, Language: j.language, IsComplete: true}
		s.idx++
		return true
	}
	s.done = true
	return false
}

func (s *openAIStream) params(j job) openai.ChatCompletionNewParams {
	var prompt Prompt
	if s.req.Section != nil {
		prompt = BuildRevisionPrompt(s.req.Snapshot, j.language, j.section, s.req.Previous[j.language], s.req.Feedback)
	} else {
		prompt = BuildSectionPrompt(s.req.Snapshot, j.language, j.section)
	}

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(prompt.System),
	}
	for _, h := range prompt.History {
		switch h.Role {
		case "assistant":
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(h.Content))
		default:
			msgs = append(msgs, openai.UserMessage(h.Content))
		}
	}
	msgs = append(msgs, openai.UserMessage(prompt.User))

	return openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(s.model),
		Messages: msgs,
	}
}

func (s *openAIStream) fail(err error) bool {
	s.err = err
	s.done = true
	return false
}

func (s *openAIStream) Current() StreamEvent { return s.cur }

func (s *openAIStream) Err() error { return s.err }

func (s *openAIStream) Close() error {
	s.done = true
	if s.sub != nil {
		err := s.sub.Close()
		s.sub = nil
		return err
	}
	return nil
}
