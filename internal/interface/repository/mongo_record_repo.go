package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRecordRepository implements RecordRepository on MongoDB. The
// document schema keeps the fixed three-slot history layout and the
// upper-cased PIR key so fixtures exported from the in-memory backend
// load unchanged.
type MongoRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoRecordRepository creates a new record repository on the
// baggage_records collection
func NewMongoRecordRepository(db *mongo.Database) repository.RecordRepository {
	collection := db.Collection("baggage_records")

	// Create unique index on pir
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"pir": 1},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	// Create index on status for the urgent sweep
	statusIndex := mongo.IndexModel{
		Keys: bson.M{"status": 1},
	}
	collection.Indexes().CreateOne(ctx, statusIndex)

	return &MongoRecordRepository{
		collection: collection,
	}
}

// GetAll returns records most-recent-first
func (r *MongoRecordRepository) GetAll(ctx context.Context) ([]entity.BaggageRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, &options.FindOptions{
		Sort: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []recordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]entity.BaggageRecord, len(docs))
	for i := range docs {
		records[i] = docs[i].BaggageRecord
	}
	return records, nil
}

// FindByPIR finds a record by its normalized PIR
func (r *MongoRecordRepository) FindByPIR(ctx context.Context, pir string) (*entity.BaggageRecord, error) {
	var doc recordDocument
	err := r.collection.FindOne(ctx, bson.M{"pir": utils.NormalizePIR(pir)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc.BaggageRecord, nil
}

// Upsert merges the patch into the matching document. Insertion on a
// miss only happens when the patch carries a PIR; the $setOnInsert
// seeds the required defaults in that case.
func (r *MongoRecordRepository) Upsert(ctx context.Context, pir string, patch entity.RecordPatch, ts time.Time) error {
	key := utils.NormalizePIR(pir)
	update, upsert := upsertUpdate(key, patch, ts)
	_, err := r.collection.UpdateOne(ctx, bson.M{"pir": key}, update, options.Update().SetUpsert(upsert))
	return err
}

// upsertUpdate builds the update document for Upsert. The status
// default lives in $setOnInsert, never in $set: a status-less patch
// must not overwrite the status of an existing record.
func upsertUpdate(key string, patch entity.RecordPatch, ts time.Time) (bson.M, bool) {
	set := patchToBson(patch)
	set["lastUpdate"] = ts

	update := bson.M{"$set": set}
	if patch.PIR == "" {
		return update, false
	}

	insert := bson.M{
		"pir":       key,
		"createdAt": time.Now(),
	}
	if patch.Status == nil {
		insert["status"] = entity.StatusInProgress
	}
	update["$setOnInsert"] = insert
	return update, true
}

// Add canonicalizes the PIR and inserts the record
func (r *MongoRecordRepository) Add(ctx context.Context, rec entity.BaggageRecord) error {
	rec.PIR = utils.NormalizePIR(rec.PIR)
	_, err := r.collection.InsertOne(ctx, recordDocument{
		BaggageRecord: rec,
		CreatedAt:     time.Now(),
	})
	return err
}

// recordDocument wraps the entity with the insertion timestamp used to
// emulate most-recent-first ordering.
type recordDocument struct {
	entity.BaggageRecord `bson:",inline"`
	CreatedAt            time.Time `bson:"createdAt"`
}

func patchToBson(p entity.RecordPatch) bson.M {
	set := bson.M{}
	if p.PassengerName != nil {
		set["passengerName"] = *p.PassengerName
	}
	if p.Flight != nil {
		set["flight"] = *p.Flight
	}
	if p.Origin != nil {
		set["origin"] = *p.Origin
	}
	if p.Destination != nil {
		set["destination"] = *p.Destination
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.CurrentLocation != nil {
		set["currentLocation"] = *p.CurrentLocation
	}
	if p.NextStep != nil {
		set["nextStep"] = *p.NextStep
	}
	if p.EstimatedArrival != nil {
		set["estimatedArrival"] = *p.EstimatedArrival
	}
	for i, ev := range p.History {
		if ev != nil {
			set["history."+strconv.Itoa(i)] = *ev
		}
	}
	if p.BaggagePhoto != nil {
		set["baggagePhoto"] = *p.BaggagePhoto
	}
	if p.BaggagePhoto2 != nil {
		set["baggagePhoto2"] = *p.BaggagePhoto2
	}
	if p.PassengerPhoto != nil {
		set["passengerPhoto"] = *p.PassengerPhoto
	}
	if p.IsConfirmedByPassenger != nil {
		set["isConfirmedByPassenger"] = *p.IsConfirmedByPassenger
	}
	if p.AiFeatures != nil {
		set["aiFeatures"] = *p.AiFeatures
	}
	return set
}
