package telegram

import (
	"context"
	"os"

	"box-bot/internal/crop"
	"box-bot/internal/ocr"
	"box-bot/internal/score"
)

func (r *Router) runPipeline(uid string, cid int64, sid string, ref imageRef) {
	report, err := r.process(context.Background(), uid, ref)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", uid).Str("session_id", sid).Msg("pipeline failed")
		r.send(cid, "❌ "+userMessage(err))
		return
	}
	r.log.Info().Str("user_id", uid).Str("session_id", sid).Msg("pipeline done")
	r.send(cid, "✅ 识别完成\n"+report)
}

func (r *Router) process(ctx context.Context, uid string, ref imageRef) (string, error) {
	path, err := r.spoolImage(ref)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if fi.Size() > maxImageBytes {
		return "", errImageTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	baseRegion, matRegion, err := crop.Extract(data)
	if err != nil {
		return "", err
	}

	eng := r.Manager.Get(uid)
	baseText, matText, err := recognizeBoth(ctx, eng, baseRegion, matRegion)
	if err != nil {
		return "", err
	}

	baseline, err := score.ParseBaseline(baseText)
	if err != nil {
		return "", err
	}
	mats, err := score.ParseMaterials(matText)
	if err != nil {
		return "", err
	}

	return score.Compute(mats, baseline).Report(), nil
}

// recognizeBoth runs OCR on both regions concurrently and joins the results.
// The first error wins; the sibling call is cancelled but still awaited, so
// the join is complete either way.
func recognizeBoth(ctx context.Context, eng ocr.Engine, base, mats crop.Region) (string, string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		tag  crop.Tag
		text string
		err  error
	}
	ch := make(chan result, 2)
	for _, reg := range []crop.Region{base, mats} {
		go func(reg crop.Region) {
			text, err := eng.Recognize(ctx, reg.JPEG)
			ch <- result{tag: reg.Tag, text: text, err: err}
		}(reg)
	}

	var baseText, matText string
	var firstErr error
	for i := 0; i < 2; i++ {
		res := <-ch
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		switch res.tag {
		case crop.BaselineRegion:
			baseText = res.text
		case crop.MaterialsRegion:
			matText = res.text
		}
	}
	if firstErr != nil {
		return "", "", firstErr
	}
	return baseText, matText, nil
}
