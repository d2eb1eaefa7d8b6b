package definition

// Fixed fragments of the Singularity definition. Placeholders are
// {UPPER_SNAKE} names resolved by render; shell variables use the bare
// $NAME form so nothing brace-shaped survives substitution.

const headerFragment = `BootStrap: docker
From: continuumio/miniconda3

`

const filesFragment = `%files

    # Embedding ssh credentials in an image is risky. They are deleted again
    # at the end of %post, but earlier layers may still hold a recoverable copy.
    # DO NOT SHARE THE RESULTING CONTAINER WITH ANYONE.
`

const sshKeyFragment = "    {SSH_KEY_FILE} /root/.ssh/\n"

const knownHostsFragment = "    {KNOWN_HOSTS_FILE} /root/.ssh/\n"

const separatorFragment = "\n"

const postFragment = `%post

    # Create a directory for the project
    mkdir -p /Workspace && cd /Workspace

    # Install git
    apt update -y && apt install -y git

    # Clone the project
    GIT_PROJECT_NAME={GIT_PROJECT_NAME}
    echo "Cloning project {GIT_PROJECT} into folder /Workspace/$GIT_PROJECT_NAME"
    git clone {GIT_PROJECT} && cd $GIT_PROJECT_NAME

    # Update the base conda environment from the environment file
    /opt/conda/bin/conda env update --name base --file {ENV_FILE}

    echo ". /opt/conda/etc/profile.d/conda.sh" >> $SINGULARITY_ENVIRONMENT
    echo "conda activate" >> $SINGULARITY_ENVIRONMENT
    echo "export PYTHONPATH=/Workspace/$GIT_PROJECT_NAME:$PYTHONPATH" >> $SINGULARITY_ENVIRONMENT
    echo "export PROJECT_DIR=/Workspace/$GIT_PROJECT_NAME" >> $SINGULARITY_ENVIRONMENT
`

const removeCredentialsFragment = `
    # Remove the ssh credentials
    rm -rf /root/.ssh
`

const runscriptFragment = `
%runscript

    cd $PROJECT_DIR
    exec "$@"

`

// LD_PRELOAD is cleared so a preload from the build host doesn't leak
// into the container at run time.
const environmentFragment = `%environment
    export LD_PRELOAD=""
`
