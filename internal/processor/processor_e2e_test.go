package processor_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/tweetlate/internal/batch"
	"codeberg.org/snonux/tweetlate/internal/cli"
	"codeberg.org/snonux/tweetlate/internal/langdetect"
	"codeberg.org/snonux/tweetlate/internal/pipeline"
	"codeberg.org/snonux/tweetlate/internal/processor"
	"codeberg.org/snonux/tweetlate/internal/testutil"
	"codeberg.org/snonux/tweetlate/internal/translation"
)

var _ = Describe("ProcessParts", func() {
	var (
		dir        string
		flags      *cli.Flags
		translator *testutil.MockTranslator
		xlit       *testutil.MockTransliterator
		detector   *testutil.MockDetector
		logs       *bytes.Buffer
		ctx        context.Context
	)

	newProcessor := func(next translation.Translator) *processor.Processor {
		logger := logrus.New()
		logger.SetOutput(logs)
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})

		pl := pipeline.New(pipeline.Config{
			Detector:       detector,
			Translator:     next,
			Transliterator: xlit,
			MinConfidence:  0.5,
			Logger:         logger,
		})
		p := processor.NewProcessor(flags, pl, logger)
		p.SetOutput(&bytes.Buffer{}, nil)
		return p
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		logs = &bytes.Buffer{}
		ctx = context.Background()

		flags = cli.NewFlags()
		flags.InputFile = testutil.CreateTestCorpus(GinkgoT(), dir, 40)
		flags.OutputPrefix = filepath.Join(dir, "translated_part_")
		flags.Quiet = true

		translator = &testutil.MockTranslator{}
		xlit = &testutil.MockTransliterator{}
		detector = &testutil.MockDetector{
			Default: langdetect.Detection{Code: langdetect.Hindi, Confidence: 0.8},
		}
	})

	Context("with a single requested part", func() {
		BeforeEach(func() {
			flags.NumParts = 20
			flags.StartPart = 1
			flags.EndPart = 1
		})

		It("writes exactly one file holding the first two records", func() {
			summary, err := newProcessor(translator).ProcessParts(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(summary.PartSize).To(Equal(2))
			Expect(summary.PartsWritten).To(Equal(1))
			Expect(testutil.ListFiles(GinkgoT(), dir, "translated_part_*.json")).
				To(ConsistOf("translated_part_1.json"))

			tweets, err := batch.ReadCorpusFile(flags.OutputPrefix + "1.json")
			Expect(err).NotTo(HaveOccurred())
			Expect(tweets).To(HaveLen(2))
			Expect(tweets[0].IDString()).To(Equal("1"))
			Expect(tweets[1].IDString()).To(Equal("2"))
		})

		It("transliterates romanized Hindi before translating it", func() {
			_, err := newProcessor(translator).ProcessParts(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(xlit.Calls).To(Equal([]string{"tweet 1", "comment 1", "tweet 2", "comment 2"}))
			Expect(translator.Calls).To(ContainElement("Translate: देवनागरी(tweet 1) (hin_Deva->eng_Latn)"))

			testutil.AssertFileContains(GinkgoT(), flags.OutputPrefix+"1.json",
				"mock translation of देवनागरी(comment 2)")
		})

		It("tags log lines with the run id", func() {
			p := newProcessor(translator)
			_, err := p.ProcessParts(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(logs.String()).To(ContainSubstring(`"run_id":"` + p.RunID() + `"`))
			Expect(logs.String()).To(ContainSubstring(`"tweet_id":"2"`))
		})
	})

	Context("when resuming a range of parts", func() {
		It("writes only the requested parts", func() {
			flags.NumParts = 20
			flags.StartPart = 19
			flags.EndPart = 0

			summary, err := newProcessor(translator).ProcessParts(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(summary.FirstPart).To(Equal(19))
			Expect(summary.LastPart).To(Equal(20))
			Expect(testutil.ListFiles(GinkgoT(), dir, "translated_part_*.json")).
				To(ConsistOf("translated_part_19.json", "translated_part_20.json"))

			last, err := batch.ReadCorpusFile(flags.OutputPrefix + "20.json")
			Expect(err).NotTo(HaveOccurred())
			Expect(last).To(HaveLen(2))
			Expect(last[1].IDString()).To(Equal("40"))
		})

		It("does not translate text again from a warm cache", func() {
			flags.NumParts = 20
			flags.StartPart = 2
			flags.EndPart = 2

			store, err := translation.OpenSQLiteStore(":memory:")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(store.Close)

			_, err = newProcessor(translation.NewCachingTranslator(translator, store, nil)).ProcessParts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(translator.Calls).To(HaveLen(4))

			// A second run with a fresh in-memory layer still hits the store
			_, err = newProcessor(translation.NewCachingTranslator(translator, store, nil)).ProcessParts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(translator.Calls).To(HaveLen(4))
		})
	})

	Context("when the translation service fails", func() {
		It("keeps the original text and still writes the part", func() {
			flags.NumParts = 20
			flags.EndPart = 1
			translator.Errors = map[string]error{"देवनागरी(tweet 1)": errors.New("service unavailable")}

			summary, err := newProcessor(translator).ProcessParts(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(summary.Failed).To(Equal(1))
			Expect(summary.Translated).To(Equal(3))

			tweets, err := batch.ReadCorpusFile(flags.OutputPrefix + "1.json")
			Expect(err).NotTo(HaveOccurred())
			Expect(tweets[0].Content).To(Equal("tweet 1"))
			Expect(tweets[0].Comments[0].Content).To(Equal("mock translation of देवनागरी(comment 1)"))
		})
	})

	Context("when the text is already English", func() {
		It("passes it through untouched", func() {
			flags.NumParts = 20
			flags.EndPart = 1
			detector.Default = langdetect.Detection{Code: langdetect.English, Confidence: 0.99}

			summary, err := newProcessor(translator).ProcessParts(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(summary.Unchanged).To(Equal(4))
			Expect(translator.Calls).To(BeEmpty())
			testutil.AssertFileContains(GinkgoT(), flags.OutputPrefix+"1.json", `"content": "tweet 1"`)
		})
	})
})
