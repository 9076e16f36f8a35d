package repository

import (
	"github.com/Muhammed-Anees-P/go-mongo-generic/domain"
	"go.mongodb.org/mongo-driver/bson"
)

// buildPopulatePipeline turns a match filter and normalized populate options
// into an aggregation pipeline: one $match stage followed by a $lookup per
// option, an optional $unwind for single-valued references, in option order.
func buildPopulatePipeline(match bson.M, populate []domain.PopulateOption) []bson.D {
	pipeline := []bson.D{
		{{Key: "$match", Value: match}},
	}

	for _, opt := range populate {
		opt = opt.ApplyDefaults()

		lookup := bson.D{
			{Key: "from", Value: opt.From},
			{Key: "localField", Value: opt.LocalField},
			{Key: "foreignField", Value: opt.ForeignField},
			{Key: "as", Value: opt.Path},
		}
		if len(opt.Select) > 0 {
			// Projection runs inside the lookup so only the selected
			// fields of the referenced documents come back.
			project := bson.D{}
			for _, field := range opt.Select {
				project = append(project, bson.E{Key: field, Value: 1})
			}
			lookup = append(lookup, bson.E{Key: "pipeline", Value: []bson.D{
				{{Key: "$project", Value: project}},
			}})
		}
		pipeline = append(pipeline, bson.D{{Key: "$lookup", Value: lookup}})

		if opt.Single {
			pipeline = append(pipeline, bson.D{
				{Key: "$unwind", Value: bson.D{
					{Key: "path", Value: "$" + opt.Path},
					{Key: "preserveNullAndEmptyArrays", Value: true},
				}},
			})
		}
	}

	return pipeline
}
