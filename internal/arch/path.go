package arch

import (
	"fmt"

	"github.com/hsgwa/archgraph/internal/diag"
	"github.com/hsgwa/archgraph/internal/entity"
	"github.com/hsgwa/archgraph/internal/model"
	"github.com/hsgwa/archgraph/internal/reader"
)

// resolveNamedPath turns one declared path record into a resolved path by
// chaining node-path table lookups and communication table lookups.
// Any miss fails this one path; the caller reports it and the batch
// continues.
func resolveNamedPath(rec reader.PathRecord, nodes map[string]*entity.Node, comms *entity.Communications) (model.Path, error) {
	if len(rec.Nodes) < 2 {
		return model.Path{}, fmt.Errorf("%w: named path %q needs at least two nodes",
			diag.ErrInvalidInput, rec.Name)
	}

	// Communications first: hop i connects node i to node i+1 on the
	// topic node i declares as its publish side.
	resolved := make([]model.Communication, 0, len(rec.Nodes)-1)
	for i := 0; i+1 < len(rec.Nodes); i++ {
		from, to := rec.Nodes[i], rec.Nodes[i+1]
		if !reader.IsDefined(from.PublishTopicName) {
			return model.Path{}, fmt.Errorf("%w: named path %q hop %d has no publish topic",
				diag.ErrInvalidInput, rec.Name, i)
		}
		if reader.IsDefined(to.SubscribeTopicName) && to.SubscribeTopicName != from.PublishTopicName {
			return model.Path{}, fmt.Errorf(
				"%w: named path %q hop %d publishes %q but the next node subscribes %q",
				diag.ErrInvalidInput, rec.Name, i, from.PublishTopicName, to.SubscribeTopicName)
		}
		comm, err := comms.Find(from.NodeName, to.NodeName, from.PublishTopicName)
		if err != nil {
			return model.Path{}, err
		}
		resolved = append(resolved, comm)
	}

	var elements []model.PathElement

	head, err := findNodePath(nodes, rec.Nodes[0].NodeName, nil, resolved[0].Publisher)
	if err != nil {
		return model.Path{}, err
	}
	elements = append(elements, head)

	for i, comm := range resolved {
		elements = append(elements, comm)

		var out model.NodeOutput
		if i+1 < len(resolved) {
			out = resolved[i+1].Publisher
		}
		np, err := findNodePath(nodes, rec.Nodes[i+1].NodeName, comm.Subscription, out)
		if err != nil {
			return model.Path{}, err
		}
		elements = append(elements, np)
	}

	return model.Path{Name: rec.Name, Elements: elements}, nil
}

func findNodePath(nodes map[string]*entity.Node, nodeName string, in model.NodeInput, out model.NodeOutput) (model.NodePath, error) {
	n, ok := nodes[nodeName]
	if !ok {
		return model.NodePath{}, fmt.Errorf("%w: node %q", diag.ErrNotFound, nodeName)
	}
	np, err := n.Paths().Find(in, out)
	if err != nil {
		return model.NodePath{}, err
	}
	return np.Finalize(), nil
}
