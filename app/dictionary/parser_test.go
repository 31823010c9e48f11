package dictionary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescription(t *testing.T) {
	parser := DefaultParser()
	t.Run("pronunciation", func(t *testing.T) {
		entry := parser.ParseDescription("美[ˈtest1]，英[ˈtest2] adj. 好的")
		require.NotNil(t, entry.US)
		require.NotNil(t, entry.UK)
		assert.Equal(t, "ˈtest1", *entry.US)
		assert.Equal(t, "ˈtest2", *entry.UK)
		assert.Equal(t, []Sense{{PartOfSpeech: "adj.", Definition: "好的"}}, entry.Senses)
	})
	t.Run("no pronunciation", func(t *testing.T) {
		entry := parser.ParseDescription("adj. 好的；adv. 快地；不相关文本")
		assert.Nil(t, entry.US)
		assert.Nil(t, entry.UK)
		expected := []Sense{
			{PartOfSpeech: "adj.", Definition: "好的"},
			{PartOfSpeech: "adv.", Definition: "快地；不相关文本"},
		}
		assert.Equal(t, expected, entry.Senses)
	})
	t.Run("no tags", func(t *testing.T) {
		entry := parser.ParseDescription("随便的文本")
		assert.Empty(t, entry.Senses)
		assert.True(t, entry.IsEmpty())
	})
	t.Run("empty", func(t *testing.T) {
		entry := parser.ParseDescription("")
		assert.Equal(t, Entry{}, entry)
	})
	t.Run("malformed preamble", func(t *testing.T) {
		entry := parser.ParseDescription("美[abc，英[def；adj. 好的")
		assert.Nil(t, entry.US)
		assert.Nil(t, entry.UK)
		assert.Equal(t, []Sense{{PartOfSpeech: "adj.", Definition: "好的"}}, entry.Senses)
	})
	t.Run("bing description", func(t *testing.T) {
		text := "必应词典为您提供quick的释义，美[kwɪk]，英[kwɪk]，adj. 快的；迅速的；" +
			"adv. 快速地；n. 指甲下的嫩肉；网络释义： 快速；迅速； "
		entry := parser.ParseDescription(text)
		us, uk := entry.Pronunciations()
		assert.Equal(t, "kwɪk", us)
		assert.Equal(t, "kwɪk", uk)
		expected := []Sense{
			{PartOfSpeech: "adv.", Definition: "快速地；n. 指甲下的嫩肉"},
			{PartOfSpeech: "网络释义", Definition: "快速；迅速"},
		}
		assert.Equal(t, expected, entry.Senses)
	})
	t.Run("colon", func(t *testing.T) {
		entry := parser.ParseDescription("网络释义：你好；哈喽")
		assert.Equal(t, []Sense{{PartOfSpeech: "网络释义", Definition: "你好；哈喽"}}, entry.Senses)
	})
	t.Run("wrapped segment", func(t *testing.T) {
		entry := parser.ParseDescription("adj. 快的\n   迅速的；网络释义：快速")
		assert.Equal(t, []Sense{
			{PartOfSpeech: "adj.", Definition: "快的 迅速的"},
			{PartOfSpeech: "网络释义", Definition: "快速"},
		}, entry.Senses)
		assert.Equal(t, entry.Senses, ParseFlat(Flatten(entry)))
	})
	t.Run("tag without text", func(t *testing.T) {
		entry := parser.ParseDescription("adj.；adv. 快")
		assert.Equal(t, []Sense{{PartOfSpeech: "adv.", Definition: "快"}}, entry.Senses)
	})
	t.Run("tag followed by plain segment", func(t *testing.T) {
		entry := parser.ParseDescription("adj.：；好的")
		assert.Equal(t, []Sense{{PartOfSpeech: "adj.", Definition: "好的"}}, entry.Senses)
	})
	t.Run("repeated overwrite", func(t *testing.T) {
		entry := parser.ParseDescription("adj. 一；adv. 二；adj. 三；四")
		expected := []Sense{
			{PartOfSpeech: "adj.", Definition: "三；四"},
			{PartOfSpeech: "adv.", Definition: "二"},
		}
		assert.Equal(t, expected, entry.Senses)
	})
	t.Run("repeated merge", func(t *testing.T) {
		merging := NewParser(DefaultVocabulary(), RepeatMerge)
		entry := merging.ParseDescription("adj. 一；adv. 二；adj. 三；四")
		expected := []Sense{
			{PartOfSpeech: "adj.", Definition: "一；三；四"},
			{PartOfSpeech: "adv.", Definition: "二"},
		}
		assert.Equal(t, expected, entry.Senses)
	})
	t.Run("custom vocabulary", func(t *testing.T) {
		v, err := NewVocabulary(append(DefaultTags, "n.", "v.")...)
		require.NoError(t, err)
		entry := NewParser(v, RepeatOverwrite).ParseDescription("n. 时间；次数；v. 计时")
		expected := []Sense{
			{PartOfSpeech: "n.", Definition: "时间；次数"},
			{PartOfSpeech: "v.", Definition: "计时"},
		}
		assert.Equal(t, expected, entry.Senses)
	})
}

func TestParseFragments(t *testing.T) {
	t.Run("even", func(t *testing.T) {
		entry := ParseFragments([]string{"adj.", "好的", "adv.", "快地"})
		expected := []Sense{
			{PartOfSpeech: "adj.", Definition: "好的"},
			{PartOfSpeech: "adv.", Definition: "快地"},
		}
		assert.Equal(t, expected, entry.Senses)
		assert.Nil(t, entry.US)
		assert.Nil(t, entry.UK)
	})
	t.Run("odd", func(t *testing.T) {
		entry := ParseFragments([]string{"adj.", "好的", "adv."})
		assert.Equal(t, []Sense{{PartOfSpeech: "adj.", Definition: "好的"}}, entry.Senses)
	})
	t.Run("empty definition", func(t *testing.T) {
		entry := ParseFragments([]string{"adj.", "  ", " adv. ", " 快地 "})
		assert.Equal(t, []Sense{{PartOfSpeech: "adv.", Definition: "快地"}}, entry.Senses)
	})
	t.Run("wrapped definition", func(t *testing.T) {
		entry := ParseFragments([]string{"n.", "第一行\n      第二行", "v.", "跑"})
		assert.Equal(t, []Sense{
			{PartOfSpeech: "n.", Definition: "第一行 第二行"},
			{PartOfSpeech: "v.", Definition: "跑"},
		}, entry.Senses)
		assert.Equal(t, entry.Senses, ParseFlat(Flatten(entry)))
	})
	t.Run("empty", func(t *testing.T) {
		assert.True(t, ParseFragments(nil).IsEmpty())
	})
}

func TestVocabulary(t *testing.T) {
	t.Run("default is disjoint", func(t *testing.T) {
		for i, a := range DefaultTags {
			for j, b := range DefaultTags {
				if i == j {
					continue
				}
				assert.False(t, strings.HasPrefix(a, b), "%q starts with %q", a, b)
			}
		}
		assert.Equal(t, DefaultTags, DefaultVocabulary().Tags())
	})
	t.Run("ambiguous", func(t *testing.T) {
		_, err := NewVocabulary("adj.", "adj")
		assert.ErrorIs(t, err, ErrAmbiguousVocabulary)
		_, err = NewVocabulary("网络", "网络释义")
		assert.ErrorIs(t, err, ErrAmbiguousVocabulary)
	})
	t.Run("duplicates and blanks", func(t *testing.T) {
		v, err := NewVocabulary("adj.", " ", "adj.", "adv.")
		require.NoError(t, err)
		assert.Equal(t, []string{"adj.", "adv."}, v.Tags())
	})
	t.Run("match order", func(t *testing.T) {
		tag, ok := DefaultVocabulary().Match("conj. 和")
		assert.True(t, ok)
		assert.Equal(t, "conj.", tag)
		_, ok = DefaultVocabulary().Match("n. 名词")
		assert.False(t, ok)
	})
}

func TestSignature(t *testing.T) {
	custom, err := NewVocabulary("n.", "v.")
	require.NoError(t, err)
	assert.Equal(t, "overwrite|pron.,adj.,adv.,conj.,网络释义", DefaultParser().Signature())
	assert.Equal(t, "merge|n.,v.", NewParser(custom, RepeatMerge).Signature())
}

func TestFlatten(t *testing.T) {
	entry := Entry{
		Word: "test",
		Senses: []Sense{
			{PartOfSpeech: "adj.", Definition: "好的，不错, ok"},
			{PartOfSpeech: "网络释义", Definition: "测试；试验"},
		},
	}
	t.Run("format", func(t *testing.T) {
		expected := "词性,词义\nadj.,好的，不错, ok\n网络释义,测试；试验\n"
		assert.Equal(t, expected, Flatten(entry))
		assert.True(t, IsFlat(Flatten(entry)))
		assert.False(t, IsFlat("译文"))
	})
	t.Run("round trip", func(t *testing.T) {
		assert.Equal(t, entry.Senses, ParseFlat(Flatten(entry)))
	})
	t.Run("line breaks", func(t *testing.T) {
		wrapped := Entry{Senses: []Sense{
			{PartOfSpeech: "n.", Definition: "第一行\n第二行"},
			{PartOfSpeech: "v.", Definition: "跑\r\n步"},
		}}
		assert.Equal(t, "词性,词义\nn.,第一行 第二行\nv.,跑 步\n", Flatten(wrapped))
		assert.Equal(t, []Sense{
			{PartOfSpeech: "n.", Definition: "第一行 第二行"},
			{PartOfSpeech: "v.", Definition: "跑 步"},
		}, ParseFlat(Flatten(wrapped)))
	})
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "词性,词义\n", Flatten(Entry{}))
		assert.Nil(t, ParseFlat(Flatten(Entry{})))
	})
}
