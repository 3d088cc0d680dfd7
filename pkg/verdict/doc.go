// Package verdict provides a sentiment classification engine that scores
// review text and explains each decision with leave-one-out token
// attributions.
//
// Quick start:
//
//	v, err := verdict.New(verdict.WithModelDir("models/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Close()
//
//	res, _ := v.Analyze(ctx, "What a fantastic movie!")
//	fmt.Println(res.Sentiment, res.Prediction) // Positive 0.93
//
// The Verdict instance is safe for concurrent use. Create once, reuse across
// requests. See the README for full documentation.
package verdict
