package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/email-otp-api/internal/domain"
)

// OTPRepo manages the append-only OTP ledger.
// PK: email, SK: otp_id (ULID). Records are inserted once and mutated only
// through Consume; nothing is ever deleted.
type OTPRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOTPRepo(client *dynamodb.Client, tableName string) *OTPRepo {
	return &OTPRepo{client: client, tableName: tableName}
}

func (r *OTPRepo) Put(ctx context.Context, rec *domain.OTPRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(" + fieldOTPID + ")"),
	})
	return err
}

// Active returns the unconsumed record for email with the greatest otp_id,
// i.e. the most recently created one. ULIDs sort by creation time, so the
// descending query already encodes the "most recent wins" tie-break.
// Returns domain.ErrNotFound (wrapped) when no unconsumed record exists.
func (r *OTPRepo) Active(ctx context.Context, email string) (*domain.OTPRecord, error) {
	recs, err := r.ActiveAll(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no active otp for %s: %w", email, domain.ErrNotFound)
	}
	return &recs[0], nil
}

// ActiveAll returns every unconsumed record for email, most recent first.
// Under the issuance invariant there is at most one, but supersession has to
// retire whatever is actually there.
func (r *OTPRepo) ActiveAll(ctx context.Context, email string) ([]domain.OTPRecord, error) {
	var recs []domain.OTPRecord
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("#e = :e"),
			FilterExpression:       aws.String("#c = :f"),
			ExpressionAttributeNames: map[string]string{
				"#e": fieldEmail,
				"#c": fieldConsumed,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":e": &types.AttributeValueMemberS{Value: email},
				":f": &types.AttributeValueMemberBOOL{Value: false},
			},
			ScanIndexForward:  aws.Bool(false),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.OTPRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		recs = append(recs, page...)
		if out.LastEvaluatedKey == nil {
			return recs, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// Consume atomically flips a record from unconsumed to consumed. The
// conditional expression is the compare-and-swap that makes codes one-time:
// of two racing consumers exactly one succeeds, the other gets
// domain.ErrConflict (wrapped).
func (r *OTPRepo) Consume(ctx context.Context, email, otpID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 compositeKey(fieldEmail, email, fieldOTPID, otpID),
		UpdateExpression:    aws.String("SET #c = :t"),
		ConditionExpression: aws.String("#c = :f"),
		ExpressionAttributeNames: map[string]string{
			"#c": fieldConsumed,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
			":f": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("otp %s already consumed: %w", otpID, domain.ErrConflict)
	}
	return err
}
