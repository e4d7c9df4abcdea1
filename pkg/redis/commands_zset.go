package redis

import (
	"context"

	"github.com/upstash/redis-go/internal/format"
	"github.com/upstash/redis-go/internal/protocol"
)

// ZAddOptions modifies ZAdd and ZAddIncr. NX and XX exclude each other, as
// do GT and LT.
type ZAddOptions struct {
	// NX only adds new members; XX only updates existing ones.
	NX bool
	XX bool

	// GT only updates when the new score is greater than the current one;
	// LT only when it is less. Both still allow adding new members.
	GT bool
	LT bool

	// CH counts changed members instead of added members in the reply.
	CH bool
}

func (o *ZAddOptions) appendTo(cmd protocol.Command) (protocol.Command, error) {
	if o.NX && o.XX {
		return nil, validationErr("ZADD", "NX and XX are mutually exclusive")
	}
	if o.GT && o.LT {
		return nil, validationErr("ZADD", "GT and LT are mutually exclusive")
	}
	if o.NX && (o.GT || o.LT) {
		return nil, validationErr("ZADD", "NX cannot be combined with GT or LT")
	}
	if o.NX {
		cmd = append(cmd, "NX")
	}
	if o.XX {
		cmd = append(cmd, "XX")
	}
	if o.GT {
		cmd = append(cmd, "GT")
	}
	if o.LT {
		cmd = append(cmd, "LT")
	}
	if o.CH {
		cmd = append(cmd, "CH")
	}
	return cmd, nil
}

// ZAdd adds the given members to the sorted set at key and returns how
// many were newly added (or changed, with the CH option).
func (c *Client) ZAdd(ctx context.Context, key string, members []MemberScore, opts ...ZAddOptions) (int64, error) {
	if len(members) == 0 {
		return 0, validationErr("ZADD", "at least one member is required")
	}
	cmd := protocol.Command{"ZADD", key}
	if len(opts) > 0 {
		var err error
		cmd, err = opts[0].appendTo(cmd)
		if err != nil {
			return 0, err
		}
	}
	for _, m := range members {
		cmd = append(cmd, m.Score, m.Member)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZAddIncr increments member's score by increment, respecting the given
// add conditions. It returns the new score, or ErrNil when a NX or XX
// condition blocked the update.
func (c *Client) ZAddIncr(ctx context.Context, key string, increment float64, member string, opts ...ZAddOptions) (float64, error) {
	cmd := protocol.Command{"ZADD", key}
	if len(opts) > 0 {
		var err error
		cmd, err = opts[0].appendTo(cmd)
		if err != nil {
			return 0, err
		}
	}
	cmd = append(cmd, "INCR", increment, member)
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asFloat(res)
}

// ZCard returns the number of members in the sorted set at key.
func (c *Client) ZCard(ctx context.Context, key string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"ZCARD", key})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZCount returns how many members have a score between min and max. Bounds
// use the score range syntax: "1", "(1", "-inf", "+inf".
func (c *Client) ZCount(ctx context.Context, key, min, max string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"ZCOUNT", key, min, max})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZDiff returns the members of the first sorted set that appear in none of
// the others.
func (c *Client) ZDiff(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, validationErr("ZDIFF", "at least one key is required")
	}
	cmd := protocol.Command{"ZDIFF", len(keys)}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// ZDiffWithScores is ZDiff with scores attached.
func (c *Client) ZDiffWithScores(ctx context.Context, keys ...string) ([]MemberScore, error) {
	if len(keys) == 0 {
		return nil, validationErr("ZDIFF", "at least one key is required")
	}
	cmd := protocol.Command{"ZDIFF", len(keys)}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	cmd = append(cmd, "WITHSCORES")
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asMemberScores(res)
}

// ZDiffStore writes the difference of the given sorted sets to dst and
// returns its cardinality.
func (c *Client) ZDiffStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, validationErr("ZDIFFSTORE", "at least one key is required")
	}
	cmd := protocol.Command{"ZDIFFSTORE", dst, len(keys)}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZIncrBy increments member's score by increment and returns the new
// score.
func (c *Client) ZIncrBy(ctx context.Context, key string, increment float64, member string) (float64, error) {
	res, err := c.run(ctx, protocol.Command{"ZINCRBY", key, increment, member})
	if err != nil {
		return 0, err
	}
	return asFloat(res)
}

// ZInter returns the members common to all given sorted sets.
func (c *Client) ZInter(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, validationErr("ZINTER", "at least one key is required")
	}
	cmd := protocol.Command{"ZINTER", len(keys)}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// ZInterWithScores is ZInter with aggregated scores attached.
func (c *Client) ZInterWithScores(ctx context.Context, keys ...string) ([]MemberScore, error) {
	if len(keys) == 0 {
		return nil, validationErr("ZINTER", "at least one key is required")
	}
	cmd := protocol.Command{"ZINTER", len(keys)}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	cmd = append(cmd, "WITHSCORES")
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asMemberScores(res)
}

// ZInterStore writes the intersection of the given sorted sets to dst and
// returns its cardinality.
func (c *Client) ZInterStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, validationErr("ZINTERSTORE", "at least one key is required")
	}
	cmd := protocol.Command{"ZINTERSTORE", dst, len(keys)}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZLexCount returns how many members sort between min and max. Bounds use
// the lexicographic range syntax: "[a", "(a", "-", "+".
func (c *Client) ZLexCount(ctx context.Context, key, min, max string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"ZLEXCOUNT", key, min, max})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZMScore returns the scores of the given members in order; a nil entry
// means the member is not in the set.
func (c *Client) ZMScore(ctx context.Context, key string, members ...string) ([]*float64, error) {
	if len(members) == 0 {
		return nil, validationErr("ZMSCORE", "at least one member is required")
	}
	cmd := protocol.Command{"ZMSCORE", key}
	for _, m := range members {
		cmd = append(cmd, m)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asOptionalFloatSlice(res)
}

// ZPopMax removes and returns up to count highest-scored members.
func (c *Client) ZPopMax(ctx context.Context, key string, count int64) ([]MemberScore, error) {
	cmd := protocol.Command{"ZPOPMAX", key}
	if count > 0 {
		cmd = append(cmd, count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asMemberScores(res)
}

// ZPopMin removes and returns up to count lowest-scored members.
func (c *Client) ZPopMin(ctx context.Context, key string, count int64) ([]MemberScore, error) {
	cmd := protocol.Command{"ZPOPMIN", key}
	if count > 0 {
		cmd = append(cmd, count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asMemberScores(res)
}

// ZRandMember returns a random member of the sorted set at key, or ErrNil
// when the set is empty.
func (c *Client) ZRandMember(ctx context.Context, key string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"ZRANDMEMBER", key})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// ZRandMemberN returns count random members. A negative count may repeat
// members.
func (c *Client) ZRandMemberN(ctx context.Context, key string, count int64) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"ZRANDMEMBER", key, count})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// ZRandMemberWithScores returns count random members with their scores.
func (c *Client) ZRandMemberWithScores(ctx context.Context, key string, count int64) ([]MemberScore, error) {
	res, err := c.run(ctx, protocol.Command{"ZRANDMEMBER", key, count, "WITHSCORES"})
	if err != nil {
		return nil, err
	}
	return asMemberScores(res)
}

// ZRange returns the members ranked from start to stop, both inclusive,
// lowest score first. Negative ranks count from the top.
func (c *Client) ZRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"ZRANGE", key, start, stop})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// ZRangeWithScores is ZRange with scores attached.
func (c *Client) ZRangeWithScores(ctx context.Context, key string, start, stop int64) ([]MemberScore, error) {
	res, err := c.run(ctx, protocol.Command{"ZRANGE", key, start, stop, "WITHSCORES"})
	if err != nil {
		return nil, err
	}
	return asMemberScores(res)
}

// RangeLimit bounds a by-score or by-lex range query. Offset and Count
// must be given together.
type RangeLimit struct {
	Offset int64
	Count  int64
}

// ZRangeByScore returns the members with scores between min and max,
// lowest first. Bounds use the score range syntax.
func (c *Client) ZRangeByScore(ctx context.Context, key, min, max string, limit ...RangeLimit) ([]string, error) {
	cmd := protocol.Command{"ZRANGEBYSCORE", key, min, max}
	if len(limit) > 0 {
		cmd = append(cmd, "LIMIT", limit[0].Offset, limit[0].Count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// ZRangeByScoreWithScores is ZRangeByScore with scores attached.
func (c *Client) ZRangeByScoreWithScores(ctx context.Context, key, min, max string, limit ...RangeLimit) ([]MemberScore, error) {
	cmd := protocol.Command{"ZRANGEBYSCORE", key, min, max, "WITHSCORES"}
	if len(limit) > 0 {
		cmd = append(cmd, "LIMIT", limit[0].Offset, limit[0].Count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asMemberScores(res)
}

// ZRangeByLex returns the members sorting between min and max under
// lexicographic order. Bounds use the lexicographic range syntax.
func (c *Client) ZRangeByLex(ctx context.Context, key, min, max string, limit ...RangeLimit) ([]string, error) {
	cmd := protocol.Command{"ZRANGEBYLEX", key, min, max}
	if len(limit) > 0 {
		cmd = append(cmd, "LIMIT", limit[0].Offset, limit[0].Count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// ZRank returns member's rank, lowest score first, or ErrNil when member
// is not in the set.
func (c *Client) ZRank(ctx context.Context, key, member string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"ZRANK", key, member})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZRem removes the given members from the sorted set at key and returns
// how many were present.
func (c *Client) ZRem(ctx context.Context, key string, members ...any) (int64, error) {
	if len(members) == 0 {
		return 0, validationErr("ZREM", "at least one member is required")
	}
	res, err := c.run(ctx, append(protocol.Command{"ZREM", key}, members...))
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZRemRangeByLex removes the members sorting between min and max and
// returns how many were removed.
func (c *Client) ZRemRangeByLex(ctx context.Context, key, min, max string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"ZREMRANGEBYLEX", key, min, max})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZRemRangeByRank removes the members ranked from start to stop, both
// inclusive, and returns how many were removed.
func (c *Client) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"ZREMRANGEBYRANK", key, start, stop})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZRemRangeByScore removes the members with scores between min and max and
// returns how many were removed.
func (c *Client) ZRemRangeByScore(ctx context.Context, key, min, max string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"ZREMRANGEBYSCORE", key, min, max})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZRevRange returns the members ranked from start to stop, highest score
// first.
func (c *Client) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"ZREVRANGE", key, start, stop})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// ZRevRangeWithScores is ZRevRange with scores attached.
func (c *Client) ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) ([]MemberScore, error) {
	res, err := c.run(ctx, protocol.Command{"ZREVRANGE", key, start, stop, "WITHSCORES"})
	if err != nil {
		return nil, err
	}
	return asMemberScores(res)
}

// ZRevRangeByScore returns the members with scores between max and min,
// highest first. Note the reversed bound order.
func (c *Client) ZRevRangeByScore(ctx context.Context, key, max, min string, limit ...RangeLimit) ([]string, error) {
	cmd := protocol.Command{"ZREVRANGEBYSCORE", key, max, min}
	if len(limit) > 0 {
		cmd = append(cmd, "LIMIT", limit[0].Offset, limit[0].Count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// ZRevRank returns member's rank, highest score first, or ErrNil when
// member is not in the set.
func (c *Client) ZRevRank(ctx context.Context, key, member string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"ZREVRANK", key, member})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// ZScan iterates the sorted set at key one page at a time, returning the
// members of the page with their scores and the cursor for the next call.
func (c *Client) ZScan(ctx context.Context, key string, cursor uint64, match string, count int64) ([]MemberScore, uint64, error) {
	cmd := protocol.Command{"ZSCAN", key, cursor}
	if match != "" {
		cmd = append(cmd, "MATCH", match)
	}
	if count > 0 {
		cmd = append(cmd, "COUNT", count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, 0, err
	}
	page, ok := res.(format.ZScanResult)
	if !ok {
		return nil, 0, replyTypeErr(res, "sorted-set scan page")
	}
	return page.Members, page.Cursor, nil
}

// ZScore returns member's score, or ErrNil when member is not in the set.
func (c *Client) ZScore(ctx context.Context, key, member string) (float64, error) {
	res, err := c.run(ctx, protocol.Command{"ZSCORE", key, member})
	if err != nil {
		return 0, err
	}
	return asFloat(res)
}

// ZUnion returns the members of the union of all given sorted sets.
func (c *Client) ZUnion(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, validationErr("ZUNION", "at least one key is required")
	}
	cmd := protocol.Command{"ZUNION", len(keys)}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// ZUnionWithScores is ZUnion with aggregated scores attached.
func (c *Client) ZUnionWithScores(ctx context.Context, keys ...string) ([]MemberScore, error) {
	if len(keys) == 0 {
		return nil, validationErr("ZUNION", "at least one key is required")
	}
	cmd := protocol.Command{"ZUNION", len(keys)}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	cmd = append(cmd, "WITHSCORES")
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asMemberScores(res)
}

// ZUnionStore writes the union of the given sorted sets to dst and returns
// its cardinality.
func (c *Client) ZUnionStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, validationErr("ZUNIONSTORE", "at least one key is required")
	}
	cmd := protocol.Command{"ZUNIONSTORE", dst, len(keys)}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}
